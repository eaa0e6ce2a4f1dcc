package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/database"
	"github.com/pageza/nutrisaur/backend/internal/logging"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

const testPassword = "testpassword123"

func intPtr(v int) *int { return &v }

// testUsers cover the profile shapes the recommender treats differently
var testUsers = []types.RegisterRequest{
	{
		Name:      "Maria Santos",
		Email:     "maria.santos@example.com",
		Username:  "mariasantos",
		AgeMonths: intPtr(30 * 12),
	},
	{
		Name:               "Jun Reyes",
		Email:              "jun.reyes@example.com",
		Username:           "junreyes",
		AgeMonths:          intPtr(18),
		DietaryPreferences: []string{"vegetarian"},
		Allergies:          []string{"dairy"},
	},
	{
		Name:               "Ana Cruz",
		Email:              "ana.cruz@example.com",
		Username:           "anacruz",
		AgeMonths:          intPtr(70 * 12),
		DietaryPreferences: []string{"pescatarian"},
		Allergies:          []string{"shellfish", "peanuts"},
	},
	{
		Name:     "No Age",
		Email:    "no.age@example.com",
		Username: "noage",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if cfg.Environment == config.Production {
		log.Fatal().Msg("refusing to seed test users in production")
	}

	db, err := database.New(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	auth := service.NewAuthService(db.DB, cfg.JWT)
	ctx := context.Background()

	created := 0
	for i := range testUsers {
		req := testUsers[i]
		req.Password = testPassword
		user, _, err := auth.Register(ctx, &req)
		if errors.Is(err, service.ErrUserExists) {
			log.Info().Str("email", req.Email).Msg("user already exists, skipping")
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
			continue
		}
		created++
		log.Info().
			Str("user_id", user.ID.String()).
			Str("email", req.Email).
			Strs("allergies", req.Allergies).
			Strs("diets", req.DietaryPreferences).
			Msg("created test user")
	}

	log.Info().Int("created", created).Str("password", testPassword).Msg("test users seeded")
}
