package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/database"
	"github.com/pageza/nutrisaur/backend/internal/logging"
)

func main() {
	// Parse command line flags
	drop := flag.Bool("drop", false, "Drop all tables before migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := database.New(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if *drop {
		if cfg.Environment == config.Production {
			log.Fatal().Msg("refusing to drop tables in production")
		}
		if err := db.Migrator().DropTable(database.Models()...); err != nil {
			log.Fatal().Err(err).Msg("failed to drop tables")
		}
		log.Warn().Msg("dropped all tables")
	}

	if err := database.RunMigrations(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Int("models", len(database.Models())).Msg("migrations applied")
}
