// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for monitoring
// samples.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
//
// Functions:
//
//   - CreateMonitoringSample(ctx, db, s) -> error
//     Validates and inserts a sample; the store assigns s.ID.
//
//   - ListMonitoringSamples(ctx, db, limit) -> []domain.MonitoringSample, error
//     Most recent first; limit <= 0 returns every row.
//
//   - AvgLoadTime(ctx, db) -> float64, error
//     Mean load time in seconds, 0 when no samples exist.
package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// CreateMonitoringSample validates s and inserts it. Timestamp defaults to
// the current UTC time when zero. Missing url or negative/NaN measurements
// yield domain.ErrValidation.
func CreateMonitoringSample(ctx context.Context, db *gorm.DB, s *domain.MonitoringSample) error {
	s.URL = strings.TrimSpace(s.URL)
	if s.URL == "" {
		return fmt.Errorf("%w: monitoring sample url is required", domain.ErrValidation)
	}
	if !nonNegative(s.LoadTime) || !nonNegative(s.MemoryUsage) {
		return fmt.Errorf("%w: load_time and memory_usage must be >= 0", domain.ErrValidation)
	}
	s.Timestamp = stamp(s.Timestamp)
	return storeErr(db.WithContext(ctx).Create(s).Error)
}

// ListMonitoringSamples returns up to limit samples, newest first.
func ListMonitoringSamples(ctx context.Context, db *gorm.DB, limit int) ([]domain.MonitoringSample, error) {
	out := []domain.MonitoringSample{}
	if err := listRecent(ctx, db, &out, "timestamp", limit); err != nil {
		return nil, err
	}
	return out, nil
}

// AvgLoadTime returns the mean load_time across all samples.
func AvgLoadTime(ctx context.Context, db *gorm.DB) (float64, error) {
	return Aggregate(ctx, db, &domain.MonitoringSample{}, "LoadTime", AggAvg)
}
