// Package services – SeedService
//
// This file implements the demo data seeder. ResetAndSeed deletes every
// monitoring, SEO and generation row and inserts a fresh demo batch inside a
// single transaction, so readers see either the old or the new data set.
// Random values come from the injected randx.Source; a fixed seed yields the
// same batch every time.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/generation"
	"github.com/tbourn/go-optimizer-dashboard/internal/randx"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
)

// Demo batch sizes and value ranges.
const (
	SeedMonitoringRows = 50
	seedLoadMin        = 0.5
	seedLoadMax        = 3.5
	seedMemMin         = 20.0
	seedMemMax         = 150.0
	seedScoreMin       = 65
	seedScoreMax       = 95
	seedSuggestions    = 3
	seedMeta           = "AI-optimized meta description for better search visibility"
)

var (
	seedMonitoringURLs = []string{
		"https://example.com",
		"https://example.com/blog",
		"https://example.com/products",
		"https://example.com/contact",
		"https://example.com/about",
	}

	seedSEOURLs = []string{
		"https://example.com",
		"https://example.com/blog",
		"https://example.com/products",
	}

	seedSuggestionPool = []string{
		"Optimize meta description length",
		"Add alt text to images",
		"Improve internal linking structure",
		"Enhance page loading speed",
		"Add structured data markup",
	}
)

// demoGeneration is one fixed illustrative generation row.
type demoGeneration struct {
	contentType domain.ContentType
	prompt      string
	result      string
	model       string
}

var seedGenerations = []demoGeneration{
	{domain.ContentText, "Write SEO-optimized blog post about AI", "Comprehensive blog post about AI and its applications...", generation.ModelText},
	{domain.ContentImage, "Professional website header image", "https://via.placeholder.com/1200x400/165DFF/FFFFFF?text=AI+Header", generation.ModelImage},
	{domain.ContentCode, "WordPress optimization function", "function optimize_wp_performance() { /* code */ }", generation.ModelText},
}

// SeedReport counts the rows written by one seeding run.
type SeedReport struct {
	Monitoring  int `json:"monitoring"`
	SEO         int `json:"seo"`
	Generations int `json:"generations"`
}

// SeedService replaces store contents with demo data.
type SeedService struct {
	DB   *gorm.DB
	Rand *randx.Source

	// Now is the clock; nil means time.Now.
	Now func() time.Time

	// hook, when set, runs inside the transaction after the inserts. Tests
	// use it to force a rollback.
	hook func(tx *gorm.DB) error
}

// NewSeedService returns a SeedService drawing from r.
func NewSeedService(db *gorm.DB, r *randx.Source) *SeedService {
	return &SeedService{DB: db, Rand: r, Now: time.Now}
}

// ResetAndSeed deletes all monitoring, SEO and generation rows and inserts
// the demo batch in one transaction. Any failure rolls everything back and
// is returned wrapped in domain.ErrSeed. Usage and user rows are untouched.
func (s *SeedService) ResetAndSeed(ctx context.Context) (SeedReport, error) {
	ctx, span := otel.Tracer("services/SeedService").Start(ctx, "ResetAndSeed")
	defer span.End()

	var rep SeedReport
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rep = SeedReport{}
		for _, m := range []any{&domain.MonitoringSample{}, &domain.SEOAnalysis{}, &domain.AIGeneration{}} {
			if _, err := repo.DeleteAll(ctx, tx, m); err != nil {
				return err
			}
		}

		now := s.now()
		// One minute apart, oldest first, ending at now.
		for i := 0; i < SeedMonitoringRows; i++ {
			sample := &domain.MonitoringSample{
				URL:         randx.Pick(s.Rand, seedMonitoringURLs),
				LoadTime:    s.Rand.Float64Range(seedLoadMin, seedLoadMax),
				MemoryUsage: s.Rand.Float64Range(seedMemMin, seedMemMax),
				Timestamp:   now.Add(-time.Duration(SeedMonitoringRows-1-i) * time.Minute),
			}
			if err := repo.CreateMonitoringSample(ctx, tx, sample); err != nil {
				return err
			}
			rep.Monitoring++
		}

		for _, u := range seedSEOURLs {
			a := &domain.SEOAnalysis{
				URL:             u,
				SEOScore:        s.Rand.IntRange(seedScoreMin, seedScoreMax),
				TitleOptimized:  s.Rand.Bool(),
				MetaDescription: seedMeta,
				Suggestions:     randx.Sample(s.Rand, seedSuggestionPool, seedSuggestions),
				Timestamp:       now,
			}
			if err := repo.CreateSEOAnalysis(ctx, tx, a); err != nil {
				return err
			}
			rep.SEO++
		}

		for _, d := range seedGenerations {
			result := d.result
			g := &domain.AIGeneration{
				ContentType: d.contentType,
				Prompt:      d.prompt,
				Model:       d.model,
				Result:      &result,
				Status:      domain.StatusCompleted,
			}
			if err := repo.CreateGeneration(ctx, tx, g); err != nil {
				return err
			}
			rep.Generations++
		}

		if s.hook != nil {
			return s.hook(tx)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		seedRunsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("demo data seeding failed; rolled back")
		return SeedReport{}, fmt.Errorf("%w: %w", domain.ErrSeed, err)
	}

	seedRunsTotal.WithLabelValues("success").Inc()
	span.SetAttributes(
		attribute.Int("seed.monitoring", rep.Monitoring),
		attribute.Int("seed.seo", rep.SEO),
		attribute.Int("seed.generations", rep.Generations),
	)
	log.Info().
		Int("monitoring", rep.Monitoring).
		Int("seo", rep.SEO).
		Int("generations", rep.Generations).
		Msg("demo data seeded")
	return rep, nil
}

// SeedIfEmpty seeds only when no monitoring, SEO or generation rows exist.
// It reports whether seeding ran.
func (s *SeedService) SeedIfEmpty(ctx context.Context) (bool, SeedReport, error) {
	ctx, span := otel.Tracer("services/SeedService").Start(ctx, "SeedIfEmpty",
		trace.WithAttributes(attribute.Bool("seed.on_start", true)),
	)
	defer span.End()

	for _, m := range []any{&domain.MonitoringSample{}, &domain.SEOAnalysis{}, &domain.AIGeneration{}} {
		n, err := repo.Aggregate(ctx, s.DB, m, "ID", repo.AggCount)
		if err != nil {
			return false, SeedReport{}, err
		}
		if n > 0 {
			return false, SeedReport{}, nil
		}
	}
	rep, err := s.ResetAndSeed(ctx)
	if err != nil {
		return false, SeedReport{}, err
	}
	return true, rep, nil
}

func (s *SeedService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
