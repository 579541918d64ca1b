package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/randx"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
	"github.com/tbourn/go-optimizer-dashboard/internal/seo"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if migrate {
		if err := repo.AutoMigrate(db); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// storeRepo proxies the repo free functions, like the router's shim.
type storeRepo struct{}

func (storeRepo) AvgLoadTime(ctx context.Context, db *gorm.DB) (float64, error) {
	return repo.AvgLoadTime(ctx, db)
}
func (storeRepo) AvgSEOScore(ctx context.Context, db *gorm.DB) (float64, error) {
	return repo.AvgSEOScore(ctx, db)
}
func (storeRepo) CountGenerations(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountGenerations(ctx, db)
}
func (storeRepo) ListMonitoringSamples(ctx context.Context, db *gorm.DB, limit int) ([]domain.MonitoringSample, error) {
	return repo.ListMonitoringSamples(ctx, db, limit)
}
func (storeRepo) ListSEOAnalyses(ctx context.Context, db *gorm.DB, limit int) ([]domain.SEOAnalysis, error) {
	return repo.ListSEOAnalyses(ctx, db, limit)
}
func (storeRepo) ListGenerations(ctx context.Context, db *gorm.DB, limit int) ([]domain.AIGeneration, error) {
	return repo.ListGenerations(ctx, db, limit)
}
func (storeRepo) SumUsage(ctx context.Context, db *gorm.DB) (repo.UsageTotals, error) {
	return repo.SumUsage(ctx, db)
}
func (storeRepo) ListAPIUsage(ctx context.Context, db *gorm.DB, limit int) ([]domain.APIUsage, error) {
	return repo.ListAPIUsage(ctx, db, limit)
}

func newTestRand() *randx.Source { return randx.New(42) }

func newTestIngestion(db *gorm.DB) *IngestionService {
	return NewIngestionService(db, seo.NewPlaceholderScorer(newTestRand()))
}
