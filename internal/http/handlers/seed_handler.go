// Demo data endpoints.
//
// GET /initialize-demo-data keeps the browser flow: it always redirects to
// the dashboard and reports the outcome through notice/level query params.
// POST {base}/demo-data is the machine-facing variant with a JSON result.
package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-optimizer-dashboard/internal/http/middleware"
)

// SeedResponse reports how many rows the reseed inserted.
type SeedResponse struct {
	Success     bool `json:"success" example:"true"`
	Monitoring  int  `json:"monitoring" example:"50"`
	SEO         int  `json:"seo" example:"3"`
	Generations int  `json:"generations" example:"3"`
}

// Notice texts carried on the redirect.
const (
	NoticeSeedOK     = "Demo data initialized successfully!"
	noticeSeedFailed = "Error initializing demo data: "
)

// InitializeDemoData godoc
// @ID          initializeDemoData
// @Summary     Reset and reseed demo data (browser flow)
// @Description Replaces all monitoring, SEO and generation rows in one transaction,
// @Description then redirects to /dashboard with notice and level (success|error).
// @Tags        Demo
// @Success     303  "Redirect to /dashboard"
// @Router      /initialize-demo-data [get]
func (h *Handlers) InitializeDemoData(c *gin.Context) {
	q := url.Values{}
	if _, err := h.seeder.ResetAndSeed(c.Request.Context()); err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("demo seed failed")
		q.Set("notice", noticeSeedFailed+err.Error())
		q.Set("level", "error")
	} else {
		q.Set("notice", NoticeSeedOK)
		q.Set("level", "success")
	}
	c.Redirect(http.StatusSeeOther, "/dashboard?"+q.Encode())
}

// SeedDemoData godoc
// @ID          seedDemoData
// @Summary     Reset and reseed demo data
// @Description Same transaction as /initialize-demo-data with a JSON report.
// @Tags        Demo
// @Produce     json
// @Success     200  {object}  handlers.SeedResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Seed failed and was rolled back"
// @Router      /api/v1/demo-data [post]
func (h *Handlers) SeedDemoData(c *gin.Context) {
	rep, err := h.seeder.ResetAndSeed(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeSeedFailed)
		return
	}
	ok(c, http.StatusOK, SeedResponse{
		Success:     true,
		Monitoring:  rep.Monitoring,
		SEO:         rep.SEO,
		Generations: rep.Generations,
	})
}
