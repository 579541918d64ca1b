// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for API usage
// metering rows.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// UsageTotals summarizes the api_usage table.
type UsageTotals struct {
	Calls           int64
	Tokens          int64
	AvgResponseTime float64
}

// CreateAPIUsage validates u and inserts it.
func CreateAPIUsage(ctx context.Context, db *gorm.DB, u *domain.APIUsage) error {
	if strings.TrimSpace(u.Endpoint) == "" {
		return fmt.Errorf("%w: usage endpoint is required", domain.ErrValidation)
	}
	if u.Status == "" {
		u.Status = domain.UsageSuccess
	}
	if u.TokensUsed < 0 || !nonNegative(u.Cost) || !nonNegative(u.ResponseTime) {
		return fmt.Errorf("%w: usage counters must be >= 0", domain.ErrValidation)
	}
	return storeErr(db.WithContext(ctx).Create(u).Error)
}

// ListAPIUsage returns up to limit usage rows, newest first.
func ListAPIUsage(ctx context.Context, db *gorm.DB, limit int) ([]domain.APIUsage, error) {
	out := []domain.APIUsage{}
	if err := listRecent(ctx, db, &out, "created_at", limit); err != nil {
		return nil, err
	}
	return out, nil
}

// SumUsage returns call count, token sum and mean response time in one query.
func SumUsage(ctx context.Context, db *gorm.DB) (UsageTotals, error) {
	var row struct {
		Calls   int64
		Tokens  sql.NullInt64
		AvgResp sql.NullFloat64
	}
	err := db.WithContext(ctx).
		Model(&domain.APIUsage{}).
		Select("COUNT(id) AS calls, SUM(tokens_used) AS tokens, AVG(response_time) AS avg_resp").
		Scan(&row).Error
	if err != nil {
		return UsageTotals{}, storeErr(err)
	}
	return UsageTotals{Calls: row.Calls, Tokens: row.Tokens.Int64, AvgResponseTime: row.AvgResp.Float64}, nil
}
