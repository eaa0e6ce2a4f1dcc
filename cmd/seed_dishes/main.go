package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/database"
	"github.com/pageza/nutrisaur/backend/internal/logging"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

func main() {
	file := flag.String("file", "data/dishes.json", "Catalog JSON file to import")
	key := flag.String("s3-key", "", "Import from this key in the configured bucket instead of a file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	req := &types.ImportCatalogRequest{Source: "file", Path: *file}
	var objects service.ObjectFetcher
	if *key != "" {
		if cfg.Catalog.Bucket == "" {
			log.Fatal().Msg("catalog.bucket must be set to import from s3")
		}
		s3cfg, err := config.NewS3Config(ctx, cfg.Catalog)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize s3")
		}
		objects = s3cfg
		req = &types.ImportCatalogRequest{Source: "s3", Key: *key}
	}

	catalog := service.NewCatalogService(db.DB, cfg.Catalog, objects, log)
	res, err := catalog.Import(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to import catalog")
	}
	log.Info().Int("imported", res.Imported).Int("total", res.Total).Msg("catalog seeded")
}
