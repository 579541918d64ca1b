// Package services – IngestionService
//
// This file implements IngestionService, which accepts new SEO analyses and
// content generation requests, runs them through the pluggable seo.Scorer and
// generation strategies, and persists the outcome. It also moves generation
// records through their lifecycle (pending → processing → completed|failed).
//
// Each generation request writes its record and one api_usage row in the same
// transaction.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/generation"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
	"github.com/tbourn/go-optimizer-dashboard/internal/seo"
)

// GenerateEndpoint is the endpoint recorded on api_usage rows.
const GenerateEndpoint = "/api/generate-content"

// IngestionService validates, produces and persists new records.
type IngestionService struct {
	DB         *gorm.DB
	Scorer     seo.Scorer
	Strategies *generation.Registry

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// NewIngestionService wires an IngestionService with the given scorer and the
// built-in generation strategies.
func NewIngestionService(db *gorm.DB, scorer seo.Scorer) *IngestionService {
	return &IngestionService{
		DB:         db,
		Scorer:     scorer,
		Strategies: generation.NewRegistry(),
		Now:        time.Now,
	}
}

func (s *IngestionService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// SubmitSEOAnalysis scores rawURL with the configured Scorer and stores the
// result.
func (s *IngestionService) SubmitSEOAnalysis(ctx context.Context, rawURL string) (*domain.SEOAnalysis, error) {
	ctx, span := otel.Tracer("services/IngestionService").Start(ctx, "SubmitSEOAnalysis",
		trace.WithAttributes(attribute.String("seo.url", rawURL)),
	)
	defer span.End()

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", domain.ErrValidation)
	}
	res, err := s.Scorer.Score(ctx, rawURL)
	if err != nil {
		if errors.Is(err, seo.ErrInvalidURL) {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return nil, err
	}

	a := &domain.SEOAnalysis{
		URL:             rawURL,
		SEOScore:        res.Score,
		TitleOptimized:  res.TitleOptimized,
		MetaDescription: res.MetaDescription,
		Suggestions:     res.Suggestions,
		Timestamp:       s.now(),
	}
	if err := repo.CreateSEOAnalysis(ctx, s.DB, a); err != nil {
		span.RecordError(err)
		return nil, err
	}
	seoAnalysesTotal.Inc()
	span.SetAttributes(attribute.Int("seo.score", a.SEOScore))
	return a, nil
}

// SubmitGeneration dispatches prompt to the strategy registered for
// contentType (the fallback for unknown types) and stores the record as
// completed. When the strategy fails, the record is stored as failed and
// returned together with an error wrapping ErrGenerationFailed. Context
// cancellation aborts without writing.
func (s *IngestionService) SubmitGeneration(ctx context.Context, contentType, prompt string) (*domain.AIGeneration, error) {
	ct, _ := domain.ParseContentType(contentType)
	ctx, span := otel.Tracer("services/IngestionService").Start(ctx, "SubmitGeneration",
		trace.WithAttributes(attribute.String("generation.content_type", string(ct))),
	)
	defer span.End()

	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}

	strategy := s.Strategies.Resolve(ct)
	started := time.Now()
	out, genErr := strategy.Generate(ctx, prompt)
	elapsed := time.Since(started).Seconds()
	if genErr != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	g := &domain.AIGeneration{
		ContentType: ct,
		Prompt:      prompt,
		Model:       strategy.Model(),
	}
	usage := &domain.APIUsage{
		Endpoint:     GenerateEndpoint,
		Model:        strategy.Model(),
		ResponseTime: elapsed,
	}
	if genErr != nil {
		msg := genErr.Error()
		g.Status = domain.StatusFailed
		g.ErrorMessage = &msg
		usage.Status = domain.UsageError
		usage.ErrorMessage = &msg
		usage.TokensUsed = countTokens(prompt)
	} else {
		g.Status = domain.StatusCompleted
		g.Result = &out
		usage.Status = domain.UsageSuccess
		usage.TokensUsed = countTokens(prompt) + countTokens(out)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateGeneration(ctx, tx, g); err != nil {
			return err
		}
		return repo.CreateAPIUsage(ctx, tx, usage)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	generationsTotal.WithLabelValues(contentTypeLabel(ct), string(g.Status)).Inc()
	span.SetAttributes(attribute.Int64("generation.id", int64(g.ID)))

	if genErr != nil {
		span.SetStatus(codes.Error, genErr.Error())
		log.Warn().Err(genErr).
			Uint("generation_id", g.ID).
			Str("content_type", string(ct)).
			Msg("content generation failed")
		return g, fmt.Errorf("%w: %v", ErrGenerationFailed, genErr)
	}
	return g, nil
}

// AdvanceGeneration moves generation id to next. result and errMsg, when
// non-nil, replace the stored values. Moves outside the lifecycle return
// domain.ErrInvalidTransition; a concurrent move of the same row loses the
// race with the same error.
func (s *IngestionService) AdvanceGeneration(ctx context.Context, id uint, next domain.GenerationStatus, result, errMsg *string) (*domain.AIGeneration, error) {
	ctx, span := otel.Tracer("services/IngestionService").Start(ctx, "AdvanceGeneration",
		trace.WithAttributes(
			attribute.Int64("generation.id", int64(id)),
			attribute.String("generation.next", string(next)),
		),
	)
	defer span.End()

	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}

	var out *domain.AIGeneration
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := repo.GetGeneration(ctx, tx, id)
		if err != nil {
			return err
		}
		if !g.Status.CanTransition(next) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, g.Status, next)
		}
		if result == nil {
			result = g.Result
		}
		if errMsg == nil {
			errMsg = g.ErrorMessage
		}
		if err := repo.UpdateGenerationStatus(ctx, tx, id, g.Status, next, result, errMsg); err != nil {
			return err
		}
		out, err = repo.GetGeneration(ctx, tx, id)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

// GetSEOAnalysis loads one analysis (used to replay idempotent requests).
func (s *IngestionService) GetSEOAnalysis(ctx context.Context, id uint) (*domain.SEOAnalysis, error) {
	return repo.GetSEOAnalysis(ctx, s.DB, id)
}

// GetGeneration loads one generation (used to replay idempotent requests).
func (s *IngestionService) GetGeneration(ctx context.Context, id uint) (*domain.AIGeneration, error) {
	return repo.GetGeneration(ctx, s.DB, id)
}

// countTokens approximates token usage by whitespace-separated words.
func countTokens(s string) int {
	return len(strings.Fields(s))
}
