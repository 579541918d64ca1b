// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for AI generation
// records, the only kind whose rows change after insertion.
package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// CreateGeneration validates g and inserts it. An empty status defaults to
// pending.
func CreateGeneration(ctx context.Context, db *gorm.DB, g *domain.AIGeneration) error {
	if strings.TrimSpace(string(g.ContentType)) == "" {
		return fmt.Errorf("%w: content_type is required", domain.ErrValidation)
	}
	if strings.TrimSpace(g.Prompt) == "" {
		return fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}
	if g.Status == "" {
		g.Status = domain.StatusPending
	}
	if !g.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, g.Status)
	}
	return storeErr(db.WithContext(ctx).Create(g).Error)
}

// GetGeneration fetches one generation by id.
func GetGeneration(ctx context.Context, db *gorm.DB, id uint) (*domain.AIGeneration, error) {
	var g domain.AIGeneration
	if err := db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &g, nil
}

// ListGenerations returns up to limit generations, newest first.
func ListGenerations(ctx context.Context, db *gorm.DB, limit int) ([]domain.AIGeneration, error) {
	out := []domain.AIGeneration{}
	if err := listRecent(ctx, db, &out, "created_at", limit); err != nil {
		return nil, err
	}
	return out, nil
}

// CountGenerations returns the total number of generation rows.
func CountGenerations(ctx context.Context, db *gorm.DB) (int64, error) {
	n, err := Aggregate(ctx, db, &domain.AIGeneration{}, "ID", AggCount)
	return int64(n), err
}

// UpdateGenerationStatus moves generation id from status `from` to `to`,
// setting result and error message. The update is conditional on the row
// still being in `from`; if it is not, domain.ErrInvalidTransition is
// returned. UpdatedAt is refreshed by GORM.
func UpdateGenerationStatus(ctx context.Context, db *gorm.DB, id uint, from, to domain.GenerationStatus, result, errMsg *string) error {
	res := db.WithContext(ctx).
		Model(&domain.AIGeneration{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":        to,
			"result":        result,
			"error_message": errMsg,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: generation %d is no longer %s", domain.ErrInvalidTransition, id, from)
	}
	return nil
}
