// Dashboard read endpoints.
//
// The page routes (/dashboard, /monitoring, /seo-optimization, /ai-tools)
// return the data each page renders; templating is left to the client.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
	"github.com/tbourn/go-optimizer-dashboard/internal/utils"
)

// MonitoringPageResponse lists the latest monitoring samples.
type MonitoringPageResponse struct {
	MonitoringData []domain.MonitoringSample `json:"monitoring_data"`
}

// SEOPageResponse lists every SEO analysis.
type SEOPageResponse struct {
	SEOData []domain.SEOAnalysis `json:"seo_data"`
}

// AIToolsPageResponse lists the latest generations.
type AIToolsPageResponse struct {
	Generations []domain.AIGeneration `json:"generations"`
}

// SettingsResponse reports non-secret runtime settings.
type SettingsResponse struct {
	ModelsAvailable []string `json:"models_available"`
	APIBasePath     string   `json:"api_base_path"`
	SeedOnStart     bool     `json:"seed_on_start"`
	SwaggerEnabled  bool     `json:"swagger_enabled"`
	IdempotencyTTL  string   `json:"idempotency_ttl" example:"24h0m0s"`
}

// Dashboard godoc
// @ID          dashboard
// @Summary     Dashboard overview
// @Description Summary figures plus the 10 latest monitoring samples, 5 latest SEO analyses and 5 latest generations.
// @Tags        Pages
// @Produce     json
// @Success     200  {object}  services.Overview
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /dashboard [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	ov, err := h.dash.Overview(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeReadFailed)
		return
	}
	ok(c, http.StatusOK, ov)
}

// Monitoring godoc
// @ID          monitoringPage
// @Summary     Monitoring samples
// @Description Latest 100 monitoring samples, newest first.
// @Tags        Pages
// @Produce     json
// @Success     200  {object}  handlers.MonitoringPageResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Router      /monitoring [get]
func (h *Handlers) Monitoring(c *gin.Context) {
	rows, err := h.dash.Monitoring(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeReadFailed)
		return
	}
	ok(c, http.StatusOK, MonitoringPageResponse{MonitoringData: rows})
}

// SEOOptimization godoc
// @ID          seoPage
// @Summary     SEO analyses
// @Description Every SEO analysis, newest first.
// @Tags        Pages
// @Produce     json
// @Success     200  {object}  handlers.SEOPageResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Router      /seo-optimization [get]
func (h *Handlers) SEOOptimization(c *gin.Context) {
	rows, err := h.dash.SEOAnalyses(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeReadFailed)
		return
	}
	ok(c, http.StatusOK, SEOPageResponse{SEOData: rows})
}

// AITools godoc
// @ID          aiToolsPage
// @Summary     Content generations
// @Description Latest 20 generations, newest first.
// @Tags        Pages
// @Produce     json
// @Success     200  {object}  handlers.AIToolsPageResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Router      /ai-tools [get]
func (h *Handlers) AITools(c *gin.Context) {
	rows, err := h.dash.Generations(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeReadFailed)
		return
	}
	ok(c, http.StatusOK, AIToolsPageResponse{Generations: rows})
}

// Settings godoc
// @ID          settingsPage
// @Summary     Runtime settings
// @Tags        Pages
// @Produce     json
// @Success     200  {object}  handlers.SettingsResponse
// @Router      /settings [get]
func (h *Handlers) Settings(c *gin.Context) {
	ok(c, http.StatusOK, SettingsResponse{
		ModelsAvailable: h.opts.ModelsAvailable,
		APIBasePath:     h.opts.APIBasePath,
		SeedOnStart:     h.opts.SeedOnStart,
		SwaggerEnabled:  h.opts.SwaggerEnabled,
		IdempotencyTTL:  h.opts.IdempotencyTTL.Round(time.Second).String(),
	})
}

// MonitoringData godoc
// @ID          monitoringData
// @Summary     Chart series
// @Description Chronological load-time and memory series over the newest samples.
// @Description Series are never padded; fewer rows yield shorter series.
// @Tags        API
// @Produce     json
// @Param       limit  query  int  false  "Number of samples"  minimum(1) maximum(500) default(50)
// @Success     200  {object}  services.ChartSeries
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Router      /api/monitoring-data [get]
func (h *Handlers) MonitoringData(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), services.DefaultChartLimit)
	series, err := h.dash.ChartSeries(c.Request.Context(), limit)
	if err != nil {
		failErr(c, err, ErrCodeReadFailed)
		return
	}
	ok(c, http.StatusOK, series)
}

// Usage godoc
// @ID          usage
// @Summary     API usage summary
// @Description Totals over every metered generation call plus the 20 latest rows.
// @Tags        API
// @Produce     json
// @Success     200  {object}  services.UsageSummary
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Router      /api/v1/usage [get]
func (h *Handlers) Usage(c *gin.Context) {
	u, err := h.dash.Usage(c.Request.Context())
	if err != nil {
		failErr(c, err, ErrCodeReadFailed)
		return
	}
	ok(c, http.StatusOK, u)
}
