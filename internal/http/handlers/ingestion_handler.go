// Ingestion endpoints.
//
//   - POST /api/run-analysis         (score a URL and store the analysis)
//   - POST /api/generate-content     (run a content strategy and store the result)
//   - POST /api/test-api             (static connectivity stub)
//   - PATCH {base}/generations/{id}/status
//
// Missing body fields fall back to the demo defaults; malformed JSON is a 400.
//
// Idempotency:
// When the client sends an Idempotency-Key that already produced a record on
// the same route, the stored record is returned with
// `Idempotency-Replayed: true` and nothing new is written.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/middleware"
	"github.com/tbourn/go-optimizer-dashboard/internal/utils"
)

// Demo defaults for missing request fields.
const (
	DefaultAnalysisURL = "https://example.com"
	DefaultPrompt      = "Generate content"
)

//
// DTOs
//

// RunAnalysisRequest is the body of POST /api/run-analysis.
type RunAnalysisRequest struct {
	URL string `json:"url" example:"https://example.com/pricing"`
}

// AnalysisView is the analysis as returned to clients.
type AnalysisView struct {
	URL         string   `json:"url" example:"https://example.com/pricing"`
	SEOScore    int      `json:"seo_score" example:"82"`
	Suggestions []string `json:"suggestions"`
}

// RunAnalysisResponse wraps a created (or replayed) analysis.
type RunAnalysisResponse struct {
	Success  bool         `json:"success" example:"true"`
	Analysis AnalysisView `json:"analysis"`
}

// GenerateContentRequest is the body of POST /api/generate-content.
type GenerateContentRequest struct {
	Type   string `json:"type" example:"text"`
	Prompt string `json:"prompt" example:"Write a landing page intro"`
}

// GenerationView is the generation as returned to clients.
type GenerationView struct {
	Type   string `json:"type" example:"text"`
	Prompt string `json:"prompt" example:"Write a landing page intro"`
	Result string `json:"result"`
	ID     uint   `json:"id" example:"12"`
}

// GenerateContentResponse wraps a created (or replayed) generation.
type GenerateContentResponse struct {
	Success    bool           `json:"success" example:"true"`
	Generation GenerationView `json:"generation"`
}

// TestAPIResponse is the static connectivity answer.
type TestAPIResponse struct {
	Success         bool     `json:"success" example:"true"`
	Message         string   `json:"message" example:"API connection successful"`
	Status          string   `json:"status" example:"connected"`
	ModelsAvailable []string `json:"models_available"`
}

// AdvanceStatusRequest is the body of the status transition endpoint.
type AdvanceStatusRequest struct {
	Status       string  `json:"status" binding:"required" example:"processing"`
	Result       *string `json:"result,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// AdvanceStatusResponse wraps the updated generation.
type AdvanceStatusResponse struct {
	Success    bool                `json:"success" example:"true"`
	Generation domain.AIGeneration `json:"generation"`
}

func analysisView(a *domain.SEOAnalysis) AnalysisView {
	s := []string(a.Suggestions)
	if s == nil {
		s = []string{}
	}
	return AnalysisView{URL: a.URL, SEOScore: a.SEOScore, Suggestions: s}
}

func generationView(g *domain.AIGeneration) GenerationView {
	v := GenerationView{Type: string(g.ContentType), Prompt: g.Prompt, ID: g.ID}
	if g.Result != nil {
		v.Result = *g.Result
	}
	return v
}

// bindOptionalJSON decodes the body into dst; an empty body leaves dst as is.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// remember records the created id for the request's Idempotency-Key. A lost
// race (another request stored first) is not an error worth reporting.
func (h *Handlers) remember(c *gin.Context, id uint) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.idem == nil {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), middleware.IdempotencyScope(c), key, id); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Uint("record_id", id).Msg("idempotency record not stored")
	}
}

//
// Handlers
//

// RunAnalysis godoc
// @ID          runAnalysis
// @Summary     Run an SEO analysis
// @Description Scores the URL with the placeholder scorer and stores the analysis.
// @Description A missing url defaults to https://example.com.
// @Tags        API
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Key for safe retries"
// @Param       body             body    handlers.RunAnalysisRequest  false  "URL to analyse"
// @Success     200  {object}  handlers.RunAnalysisResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed body"
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /api/run-analysis [post]
func (h *Handlers) RunAnalysis(c *gin.Context) {
	ctx := c.Request.Context()

	if id, replay := middleware.ReplayRecordID(c); replay {
		if prev, err := h.ingest.GetSEOAnalysis(ctx, id); err == nil {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, RunAnalysisResponse{Success: true, Analysis: analysisView(prev)})
			return
		}
	}

	var req RunAnalysisRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "malformed JSON body")
		return
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		url = DefaultAnalysisURL
	}

	a, err := h.ingest.SubmitSEOAnalysis(ctx, url)
	if err != nil {
		failErr(c, err, ErrCodeAnalysisFailed)
		return
	}
	h.remember(c, a.ID)
	ok(c, http.StatusOK, RunAnalysisResponse{Success: true, Analysis: analysisView(a)})
}

// GenerateContent godoc
// @ID          generateContent
// @Summary     Generate content
// @Description Dispatches the prompt to the strategy for the content type
// @Description (text, image, video, audio, code; anything else gets a generic placeholder).
// @Description A missing type defaults to text and a missing prompt to "Generate content".
// @Tags        API
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Key for safe retries"
// @Param       body             body    handlers.GenerateContentRequest  false  "Generation request"
// @Success     200  {object}  handlers.GenerateContentResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed body"
// @Failure     502  {object}  handlers.ErrorResponse  "Strategy failed; the failed record is stored"
// @Failure     503  {object}  handlers.ErrorResponse  "Store not initialized"
// @Router      /api/generate-content [post]
func (h *Handlers) GenerateContent(c *gin.Context) {
	ctx := c.Request.Context()

	if id, replay := middleware.ReplayRecordID(c); replay {
		if prev, err := h.ingest.GetGeneration(ctx, id); err == nil {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, GenerateContentResponse{Success: true, Generation: generationView(prev)})
			return
		}
	}

	var req GenerateContentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		req.Prompt = DefaultPrompt
	}

	g, err := h.ingest.SubmitGeneration(ctx, req.Type, req.Prompt)
	if err != nil {
		if g != nil {
			c.Header("X-Generation-ID", strconv.FormatUint(uint64(g.ID), 10))
		}
		failErr(c, err, ErrCodeGenerationFailed)
		return
	}
	h.remember(c, g.ID)
	ok(c, http.StatusOK, GenerateContentResponse{Success: true, Generation: generationView(g)})
}

// TestAPI godoc
// @ID          testAPI
// @Summary     Test model API connectivity
// @Description Static stub; no model endpoint is contacted.
// @Tags        API
// @Produce     json
// @Success     200  {object}  handlers.TestAPIResponse
// @Router      /api/test-api [post]
func (h *Handlers) TestAPI(c *gin.Context) {
	ok(c, http.StatusOK, TestAPIResponse{
		Success:         true,
		Message:         "API connection successful",
		Status:          "connected",
		ModelsAvailable: h.opts.ModelsAvailable,
	})
}

// AdvanceGenerationStatus godoc
// @ID          advanceGenerationStatus
// @Summary     Move a generation through its lifecycle
// @Description Allowed moves: pending→processing, processing→completed, processing→failed.
// @Tags        API
// @Accept      json
// @Produce     json
// @Param       id    path  int  true  "Generation ID"  minimum(1)
// @Param       body  body  handlers.AdvanceStatusRequest  true  "Target status"
// @Success     200  {object}  handlers.AdvanceStatusResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id, body or status"
// @Failure     404  {object}  handlers.ErrorResponse  "Generation not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Transition not allowed"
// @Router      /api/v1/generations/{id}/status [patch]
func (h *Handlers) AdvanceGenerationStatus(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	var req AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	g, err := h.ingest.AdvanceGeneration(c.Request.Context(), id,
		domain.GenerationStatus(strings.ToLower(strings.TrimSpace(req.Status))), req.Result, req.ErrorMessage)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, AdvanceStatusResponse{Success: true, Generation: *g})
}
