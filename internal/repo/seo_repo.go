// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for SEO analyses.
package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// CreateSEOAnalysis validates a and inserts it. A nil suggestion list is
// stored as an empty JSON array.
func CreateSEOAnalysis(ctx context.Context, db *gorm.DB, a *domain.SEOAnalysis) error {
	a.URL = strings.TrimSpace(a.URL)
	if a.URL == "" {
		return fmt.Errorf("%w: seo analysis url is required", domain.ErrValidation)
	}
	if a.Suggestions == nil {
		a.Suggestions = []string{}
	}
	a.Timestamp = stamp(a.Timestamp)
	return storeErr(db.WithContext(ctx).Create(a).Error)
}

// GetSEOAnalysis fetches one analysis by id.
func GetSEOAnalysis(ctx context.Context, db *gorm.DB, id uint) (*domain.SEOAnalysis, error) {
	var a domain.SEOAnalysis
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &a, nil
}

// ListSEOAnalyses returns up to limit analyses, newest first; limit <= 0
// returns all of them.
func ListSEOAnalyses(ctx context.Context, db *gorm.DB, limit int) ([]domain.SEOAnalysis, error) {
	out := []domain.SEOAnalysis{}
	if err := listRecent(ctx, db, &out, "timestamp", limit); err != nil {
		return nil, err
	}
	return out, nil
}

// AvgSEOScore returns the mean seo_score across all analyses.
func AvgSEOScore(ctx context.Context, db *gorm.DB) (float64, error) {
	return Aggregate(ctx, db, &domain.SEOAnalysis{}, "SEOScore", AggAvg)
}
