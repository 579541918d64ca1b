package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// ErrDuplicate is returned when (scope, key) is already recorded.
var ErrDuplicate = errors.New("duplicate")

// unexpired restricts a query to records still inside their TTL at now.
func unexpired(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx.Where("expires_at > ?", now) }
}

// GetIdempotency looks up the record stored for an Idempotency-Key on a
// route. Blank inputs and expired records are ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scope) == "" || strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	rec := new(domain.Idempotency)
	if err := db.WithContext(ctx).
		Scopes(unexpired(now)).
		Where(&domain.Idempotency{Scope: scope, Key: key}).
		Take(rec).Error; err != nil {
		return nil, storeErr(err)
	}
	return rec, nil
}

// CreateIdempotency binds key to the ingested recordID for ttl. A second
// insert of the same (scope, key) yields ErrDuplicate.
func CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key string, recordID uint, status int, ttl time.Duration) (*domain.Idempotency, error) {
	created := time.Now().UTC()
	rec := domain.Idempotency{
		ID:        uuid.NewString(),
		Scope:     scope,
		Key:       key,
		RecordID:  recordID,
		Status:    status,
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
	}
	err := db.WithContext(ctx).Create(&rec).Error
	switch {
	case err == nil:
		return &rec, nil
	case isDuplicate(err):
		return nil, ErrDuplicate
	default:
		return nil, storeErr(err)
	}
}

// PurgeExpiredIdempotency removes records whose TTL ended at or before now
// and reports how many went.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.Idempotency{})
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}
