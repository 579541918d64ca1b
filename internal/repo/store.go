// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the kind-agnostic store primitives shared by
// the per-kind repositories:
//
//   - Aggregate(ctx, db, model, field, fn) -> float64, error
//     AVG/COUNT over one column; zero when the table is empty.
//
//   - DeleteAll(ctx, db, model) -> int64, error
//     Removes every row of one kind (used by the demo seeder's reset).
//
// Error semantics:
//   - Missing tables are reported as domain.ErrNotReady.
//   - Missing rows are reported as domain.ErrNotFound.
//   - Unknown aggregate fields are reported as domain.ErrValidation.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = domain.ErrNotFound

// AggFunc names a supported aggregate.
type AggFunc string

const (
	AggAvg   AggFunc = "AVG"
	AggCount AggFunc = "COUNT"
)

// Aggregate computes fn over the column backing field (Go field name or DB
// column name) of model's table. An empty table yields 0 for both AVG and
// COUNT.
func Aggregate(ctx context.Context, db *gorm.DB, model any, field string, fn AggFunc) (float64, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return 0, err
	}
	f := stmt.Schema.LookUpField(field)
	if f == nil || f.DBName == "" {
		return 0, fmt.Errorf("%w: unknown field %q on %s", domain.ErrValidation, field, stmt.Schema.Table)
	}

	var expr string
	switch fn {
	case AggAvg, AggCount:
		expr = string(fn) + "(" + stmt.Quote(f.DBName) + ") AS v"
	default:
		return 0, fmt.Errorf("%w: unsupported aggregate %q", domain.ErrValidation, fn)
	}

	var row struct {
		V sql.NullFloat64
	}
	if err := db.WithContext(ctx).Model(model).Select(expr).Scan(&row).Error; err != nil {
		return 0, storeErr(err)
	}
	if !row.V.Valid {
		return 0, nil
	}
	return row.V.Float64, nil
}

// DeleteAll hard-deletes every row of model's table and returns the number
// of rows removed.
func DeleteAll(ctx context.Context, db *gorm.DB, model any) (int64, error) {
	res := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}

// listRecent loads rows into dest ordered by orderCol descending (id breaks
// ties, so rows sharing a timestamp keep insertion order). limit <= 0 means
// no cap.
func listRecent(ctx context.Context, db *gorm.DB, dest any, orderCol string, limit int) error {
	q := db.WithContext(ctx).Order(orderCol + " DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return storeErr(q.Find(dest).Error)
}

// storeErr translates driver errors into domain sentinels.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if isMissingTable(err) {
		return fmt.Errorf("%w: %v", domain.ErrNotReady, err)
	}
	return err
}

// isMissingTable detects "schema not created" across drivers.
func isMissingTable(err error) bool {
	// SQLite: "no such table: monitoring_data"
	// Postgres: `relation "monitoring_data" does not exist`
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}

// nonNegative reports whether v is a finite number >= 0.
func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// stamp returns t, or the current UTC time when t is zero.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
