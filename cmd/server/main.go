// Command server runs the optimizer dashboard HTTP API.
//
// @title           Optimizer Dashboard API
// @version         1.0
// @description     Monitoring, SEO analysis and AI content generation demo backend.
// @BasePath        /
// @schemes         http https
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/config"
	httpapi "github.com/tbourn/go-optimizer-dashboard/internal/http"
	"github.com/tbourn/go-optimizer-dashboard/internal/observability"
	"github.com/tbourn/go-optimizer-dashboard/internal/randx"
	"github.com/tbourn/go-optimizer-dashboard/internal/repo"
	"github.com/tbourn/go-optimizer-dashboard/internal/services"
	"github.com/tbourn/go-optimizer-dashboard/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ver := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName, ver)
	zerolog.DefaultContextLogger = &log.Logger
	sysutil.SetLogLevel(cfg.LogLevel)

	ctx, stop := sysutil.SignalContext(context.Background())
	defer stop()

	if err := run(ctx, cfg, ver); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, ver string) error {
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, ver)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(db); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db_driver", cfg.DBDriver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// openStore opens and migrates the store, ensures the bootstrap user, drops
// expired idempotency keys and seeds demo data when configured.
func openStore(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	db, err := repo.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.OTEL.Enabled {
		if err := repo.Instrument(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing disabled")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		_ = repo.Close(db)
		return nil, err
	}

	if cfg.Admin.Enabled() {
		created, err := repo.EnsureBootstrapUser(ctx, db, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			_ = repo.Close(db)
			return nil, err
		}
		log.Info().Bool("created", created).Msg("bootstrap user ensured")
	}

	if n, err := repo.PurgeExpiredIdempotency(ctx, db, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Msg("purge idempotency keys")
	} else if n > 0 {
		log.Info().Int64("purged", n).Msg("expired idempotency keys removed")
	}

	if cfg.SeedOnStart {
		seeded, _, err := services.NewSeedService(db, randx.New(cfg.DemoSeed)).SeedIfEmpty(ctx)
		if err != nil {
			_ = repo.Close(db)
			return nil, err
		}
		if !seeded {
			log.Info().Msg("store not empty; demo seed skipped")
		}
	}
	return db, nil
}
