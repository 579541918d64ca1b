// Package handlers exposes the dashboard's HTTP endpoints.
//
// Handlers are transport-thin: they decode input (falling back to the demo
// defaults for missing fields), call the services through the interfaces
// below, and shape the JSON. The service contracts are context-aware and
// implementations must be safe for concurrent use.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
)

// DashboardService is the read side.
type DashboardService interface {
	Overview(ctx context.Context) (*services.Overview, error)
	Monitoring(ctx context.Context) ([]domain.MonitoringSample, error)
	SEOAnalyses(ctx context.Context) ([]domain.SEOAnalysis, error)
	Generations(ctx context.Context) ([]domain.AIGeneration, error)
	ChartSeries(ctx context.Context, limit int) (services.ChartSeries, error)
	Usage(ctx context.Context) (*services.UsageSummary, error)
}

// IngestionService creates analyses and generations.
type IngestionService interface {
	SubmitSEOAnalysis(ctx context.Context, rawURL string) (*domain.SEOAnalysis, error)
	SubmitGeneration(ctx context.Context, contentType, prompt string) (*domain.AIGeneration, error)
	AdvanceGeneration(ctx context.Context, id uint, next domain.GenerationStatus, result, errMsg *string) (*domain.AIGeneration, error)
	GetSEOAnalysis(ctx context.Context, id uint) (*domain.SEOAnalysis, error)
	GetGeneration(ctx context.Context, id uint) (*domain.AIGeneration, error)
}

// Seeder wipes and repopulates the demo data.
type Seeder interface {
	ResetAndSeed(ctx context.Context) (services.SeedReport, error)
}

// IdempotencyStore remembers which record a (scope, key) produced. Lookups
// happen in middleware; handlers only record.
type IdempotencyStore interface {
	Remember(ctx context.Context, scope, key string, recordID uint) error
}

// Options carries the static values some endpoints echo.
type Options struct {
	ModelsAvailable []string
	APIBasePath     string
	SeedOnStart     bool
	SwaggerEnabled  bool
	IdempotencyTTL  time.Duration
}

// DefaultModelsAvailable is reported by /api/test-api when none are configured.
var DefaultModelsAvailable = []string{"Qwen/QwQ-32B", "Stable Diffusion XL", "LTX-Video"}

// Handlers groups every endpoint. idem may be nil, which disables recording.
type Handlers struct {
	dash   DashboardService
	ingest IngestionService
	seeder Seeder
	idem   IdempotencyStore
	opts   Options
}

// New constructs Handlers bound to the given services.
func New(dash DashboardService, ingest IngestionService, seeder Seeder, idem IdempotencyStore, opts Options) *Handlers {
	if len(opts.ModelsAvailable) == 0 {
		opts.ModelsAvailable = DefaultModelsAvailable
	}
	return &Handlers{dash: dash, ingest: ingest, seeder: seeder, idem: idem, opts: opts}
}
