// Package services – DashboardService
//
// This file implements the read side of the dashboard: summary statistics,
// the chronological chart series, recent-row listings and the usage summary.
// It never writes. Every method goes through DashboardRepo so handlers can be
// tested against fakes.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
	"github.com/tbourn/go-optimizer-dashboard/internal/utils"
)

// Row caps used by the read views.
const (
	DefaultChartLimit    = 50
	MaxChartLimit        = 500
	MonitoringPageLimit  = 100
	GenerationsPageLimit = 20
	OverviewMonitoring   = 10
	OverviewSEO          = 5
	OverviewGenerations  = 5
	UsageRecentLimit     = 20
)

// DashboardRepo defines the repository contract required by DashboardService.
type DashboardRepo interface {
	AvgLoadTime(ctx context.Context, db *gorm.DB) (float64, error)
	AvgSEOScore(ctx context.Context, db *gorm.DB) (float64, error)
	CountGenerations(ctx context.Context, db *gorm.DB) (int64, error)

	// List* return rows newest first; limit <= 0 means all rows.
	ListMonitoringSamples(ctx context.Context, db *gorm.DB, limit int) ([]domain.MonitoringSample, error)
	ListSEOAnalyses(ctx context.Context, db *gorm.DB, limit int) ([]domain.SEOAnalysis, error)
	ListGenerations(ctx context.Context, db *gorm.DB, limit int) ([]domain.AIGeneration, error)

	SumUsage(ctx context.Context, db *gorm.DB) (repo.UsageTotals, error)
	ListAPIUsage(ctx context.Context, db *gorm.DB, limit int) ([]domain.APIUsage, error)
}

// Summary is the headline statistics block.
type Summary struct {
	AvgLoadTime      float64 `json:"avg_load_time"`
	AvgSEOScore      int     `json:"avg_seo_score"`
	TotalGenerations int64   `json:"total_generations"`
}

// ChartSeries holds three equal-length, chronologically ordered arrays.
type ChartSeries struct {
	Labels      []string  `json:"labels"`
	LoadTimes   []float64 `json:"load_times"`
	MemoryUsage []float64 `json:"memory_usage"`
}

// Overview is the dashboard landing payload.
type Overview struct {
	Summary           Summary                   `json:"summary"`
	RecentMonitoring  []domain.MonitoringSample `json:"recent_monitoring"`
	RecentSEO         []domain.SEOAnalysis      `json:"recent_seo"`
	RecentGenerations []domain.AIGeneration     `json:"recent_generations"`
}

// UsageSummary reports metering totals and the latest rows.
type UsageSummary struct {
	TotalCalls      int64             `json:"total_calls"`
	TotalTokens     int64             `json:"total_tokens"`
	AvgResponseTime float64           `json:"avg_response_time"`
	Recent          []domain.APIUsage `json:"recent"`
}

// DashboardService computes read models over the store.
type DashboardService struct {
	DB   *gorm.DB
	Repo DashboardRepo

	// Location is used for chart labels; nil means UTC.
	Location *time.Location
}

// NewDashboardService constructs a DashboardService labelling charts in UTC.
func NewDashboardService(db *gorm.DB, r DashboardRepo) *DashboardService {
	return &DashboardService{DB: db, Repo: r, Location: time.UTC}
}

// Summary returns avg load time (2 decimals), avg SEO score (rounded) and the
// generation count. An empty store yields all zeros.
func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "Summary")
	defer span.End()

	avgLoad, err := s.Repo.AvgLoadTime(ctx, s.DB)
	if err != nil {
		return Summary{}, err
	}
	avgSEO, err := s.Repo.AvgSEOScore(ctx, s.DB)
	if err != nil {
		return Summary{}, err
	}
	total, err := s.Repo.CountGenerations(ctx, s.DB)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		AvgLoadTime:      round2(avgLoad),
		AvgSEOScore:      int(math.Round(avgSEO)),
		TotalGenerations: total,
	}, nil
}

// ChartSeries fetches the latest limit samples and returns them oldest
// first with "HH:MM" labels. limit <= 0 means DefaultChartLimit; values above
// MaxChartLimit are clamped. The series is never padded.
func (s *DashboardService) ChartSeries(ctx context.Context, limit int) (ChartSeries, error) {
	limit = utils.ClampInt(limit, DefaultChartLimit, 1, MaxChartLimit)
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "ChartSeries",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	rows, err := s.Repo.ListMonitoringSamples(ctx, s.DB, limit)
	if err != nil {
		return ChartSeries{}, err
	}

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	out := ChartSeries{
		Labels:      make([]string, 0, len(rows)),
		LoadTimes:   make([]float64, 0, len(rows)),
		MemoryUsage: make([]float64, 0, len(rows)),
	}
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		out.Labels = append(out.Labels, r.Timestamp.In(loc).Format("15:04"))
		out.LoadTimes = append(out.LoadTimes, r.LoadTime)
		out.MemoryUsage = append(out.MemoryUsage, r.MemoryUsage)
	}
	span.SetAttributes(attribute.Int("points", len(rows)))
	return out, nil
}

// Overview returns the summary plus the latest monitoring, SEO and
// generation rows.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "Overview")
	defer span.End()

	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	mon, err := s.Repo.ListMonitoringSamples(ctx, s.DB, OverviewMonitoring)
	if err != nil {
		return nil, err
	}
	seo, err := s.Repo.ListSEOAnalyses(ctx, s.DB, OverviewSEO)
	if err != nil {
		return nil, err
	}
	gens, err := s.Repo.ListGenerations(ctx, s.DB, OverviewGenerations)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Summary:           sum,
		RecentMonitoring:  mon,
		RecentSEO:         seo,
		RecentGenerations: gens,
	}, nil
}

// Monitoring returns the latest MonitoringPageLimit samples.
func (s *DashboardService) Monitoring(ctx context.Context) ([]domain.MonitoringSample, error) {
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "Monitoring")
	defer span.End()
	return s.Repo.ListMonitoringSamples(ctx, s.DB, MonitoringPageLimit)
}

// SEOAnalyses returns every SEO analysis, newest first.
func (s *DashboardService) SEOAnalyses(ctx context.Context) ([]domain.SEOAnalysis, error) {
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "SEOAnalyses")
	defer span.End()
	return s.Repo.ListSEOAnalyses(ctx, s.DB, 0)
}

// Generations returns the latest GenerationsPageLimit generations.
func (s *DashboardService) Generations(ctx context.Context) ([]domain.AIGeneration, error) {
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "Generations")
	defer span.End()
	return s.Repo.ListGenerations(ctx, s.DB, GenerationsPageLimit)
}

// Usage returns metering totals and the latest UsageRecentLimit rows.
func (s *DashboardService) Usage(ctx context.Context) (*UsageSummary, error) {
	ctx, span := otel.Tracer("services/DashboardService").Start(ctx, "Usage")
	defer span.End()

	tot, err := s.Repo.SumUsage(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	recent, err := s.Repo.ListAPIUsage(ctx, s.DB, UsageRecentLimit)
	if err != nil {
		return nil, err
	}
	return &UsageSummary{
		TotalCalls:      tot.Calls,
		TotalTokens:     tot.Tokens,
		AvgResponseTime: tot.AvgResponseTime,
		Recent:          recent,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
