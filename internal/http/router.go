// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Dashboard pages and the original /api/* endpoints are mounted at the root;
// the additional JSON API (usage, demo-data, status transitions) lives under
// cfg.APIBasePath.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-optimizer-dashboard/docs"
	"github.com/tbourn/go-optimizer-dashboard/internal/config"
	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/handlers"
	"github.com/tbourn/go-optimizer-dashboard/internal/http/middleware"
	"github.com/tbourn/go-optimizer-dashboard/internal/randx"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
	"github.com/tbourn/go-optimizer-dashboard/internal/seo"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
)

// dashboardRepoShim adapts the repository free functions to the
// services.DashboardRepo interface.
type dashboardRepoShim struct{}

func (dashboardRepoShim) AvgLoadTime(ctx context.Context, db *gorm.DB) (float64, error) {
	return repo.AvgLoadTime(ctx, db)
}

func (dashboardRepoShim) AvgSEOScore(ctx context.Context, db *gorm.DB) (float64, error) {
	return repo.AvgSEOScore(ctx, db)
}

func (dashboardRepoShim) CountGenerations(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountGenerations(ctx, db)
}

func (dashboardRepoShim) ListMonitoringSamples(ctx context.Context, db *gorm.DB, limit int) ([]domain.MonitoringSample, error) {
	return repo.ListMonitoringSamples(ctx, db, limit)
}

func (dashboardRepoShim) ListSEOAnalyses(ctx context.Context, db *gorm.DB, limit int) ([]domain.SEOAnalysis, error) {
	return repo.ListSEOAnalyses(ctx, db, limit)
}

func (dashboardRepoShim) ListGenerations(ctx context.Context, db *gorm.DB, limit int) ([]domain.AIGeneration, error) {
	return repo.ListGenerations(ctx, db, limit)
}

func (dashboardRepoShim) SumUsage(ctx context.Context, db *gorm.DB) (repo.UsageTotals, error) {
	return repo.SumUsage(ctx, db)
}

func (dashboardRepoShim) ListAPIUsage(ctx context.Context, db *gorm.DB, limit int) ([]domain.APIUsage, error) {
	return repo.ListAPIUsage(ctx, db, limit)
}

// idempotencyStore persists Idempotency-Key outcomes in the store.
type idempotencyStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// Lookup satisfies middleware.IdempotencyLookup. Missing or expired keys are
// a miss, not an error.
func (s idempotencyStore) Lookup(ctx context.Context, scope, key string, now time.Time) (uint, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.db, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rec.RecordID, true, nil
}

// Remember records the first outcome for (scope, key); later writes for the
// same pair are ignored.
func (s idempotencyStore) Remember(ctx context.Context, scope, key string, recordID uint) error {
	_, err := repo.CreateIdempotency(ctx, s.db, scope, key, recordID, http.StatusOK, s.ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. The store behind db must already be migrated.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per IP, bypass on replay)
//  9. CORS and Security headers
//  10. Gzip for JSON responses
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
		SkipPaths:   []string{"/health", "/metrics"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	idem := idempotencyStore{db: db, ttl: cfg.IdempotencyTTL}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idem.Lookup))

	// 8) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (allow all if none configured)
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", middleware.HeaderIdempotencyReplayed}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 10) Compression
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/swagger"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	rnd := randx.New(cfg.DemoSeed)
	dashSvc := services.NewDashboardService(db, dashboardRepoShim{})
	ingestSvc := services.NewIngestionService(db, seo.NewPlaceholderScorer(rnd))
	seedSvc := services.NewSeedService(db, rnd)

	h := handlers.New(dashSvc, ingestSvc, seedSvc, idem, handlers.Options{
		ModelsAvailable: cfg.ModelsAvailable,
		APIBasePath:     cfg.APIBasePath,
		SeedOnStart:     cfg.SeedOnStart,
		SwaggerEnabled:  cfg.SwaggerEnabled,
		IdempotencyTTL:  cfg.IdempotencyTTL,
	})

	noStore := middleware.SecurityHeaders(middleware.SecurityOptions{NoStore: true})

	// Pages
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	r.GET("/dashboard", h.Dashboard)
	r.GET("/monitoring", h.Monitoring)
	r.GET("/seo-optimization", h.SEOOptimization)
	r.GET("/ai-tools", h.AITools)
	r.GET("/settings", h.Settings)
	r.GET("/initialize-demo-data", noStore, h.InitializeDemoData)

	// Dashboard API
	api := r.Group("/api", noStore)
	{
		api.POST("/run-analysis", h.RunAnalysis)
		api.POST("/generate-content", h.GenerateContent)
		api.POST("/test-api", h.TestAPI)
		api.GET("/monitoring-data", h.MonitoringData)
	}

	// Extended API
	ext := groupWithPrefix(r, cfg.APIBasePath)
	ext.Use(noStore)
	{
		ext.GET("/usage", h.Usage)
		ext.POST("/demo-data", h.SeedDemoData)
		ext.PATCH("/generations/:id/status", h.AdvanceGenerationStatus)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
