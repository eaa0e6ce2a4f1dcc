package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/api"
	"github.com/pageza/nutrisaur/backend/internal/database"
	"github.com/pageza/nutrisaur/backend/internal/logging"
	"github.com/pageza/nutrisaur/backend/internal/middleware"
	"github.com/pageza/nutrisaur/backend/internal/router"
	"github.com/pageza/nutrisaur/backend/internal/server"
	"github.com/pageza/nutrisaur/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Listen for an interrupt or terminate signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

//nolint:gocritic // zerolog.Logger is passed by value throughout
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := database.New(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.Redis.Enabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		limiter = middleware.NewRecommendationRateLimiter(client, cfg.RateLimit, log)
	}

	var objects service.ObjectFetcher
	if cfg.Catalog.Source == "s3" {
		s3cfg, err := config.NewS3Config(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		objects = s3cfg
	}

	authService := service.NewAuthService(db.DB, cfg.JWT)
	preferenceService := service.NewPreferenceService(db.DB, log)
	catalogService := service.NewCatalogService(db.DB, cfg.Catalog, objects, log)

	// An external source is imported on every start; the db source is only read
	if _, err := catalogService.Import(ctx, nil); err != nil {
		return fmt.Errorf("failed to load dish catalog: %w", err)
	}

	recommendationService, err := service.NewRecommendationService(catalogService, preferenceService, cfg.Engine, cfg.Breaker, log)
	if err != nil {
		return err
	}
	preferenceService.OnChange(recommendationService)

	handler := router.SetupRouter(router.Deps{
		Log:            log,
		CORSOrigins:    cfg.Server.CORSOrigins,
		DB:             db,
		Auth:           api.NewAuthHandler(authService),
		Preferences:    api.NewPreferenceHandler(preferenceService, authService),
		Recommendation: api.NewRecommendationHandler(recommendationService, authService, limiter),
		Catalog:        api.NewCatalogHandler(catalogService, authService, cfg.Catalog.Admins),
	})

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("addr", cfg.Server.Addr()).
		Str("catalog_source", cfg.Catalog.Source).
		Msg("starting server")

	return server.New(cfg.Server, handler, log).Start(ctx)
}
