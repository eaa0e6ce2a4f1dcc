package database

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrisaur/backend/config"
	"github.com/pageza/nutrisaur/backend/internal/models"
)

func openSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := New(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDatabase(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, RunMigrations(db.DB))
	assert.NoError(t, db.HealthCheck(context.Background()))

	user := models.User{
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotZero(t, user.ID)

	dish := models.Dish{
		Code:      "adobo",
		Position:  1,
		Name:      "Chicken Adobo",
		Tags:      []string{"CHI", "MEA"},
		Allergens: []string{"soy"},
		Protein:   25,
	}
	require.NoError(t, db.Create(&dish).Error)

	var loaded models.Dish
	require.NoError(t, db.First(&loaded, "code = ?", "adobo").Error)
	assert.Equal(t, []string{"CHI", "MEA"}, []string(loaded.Tags))
	assert.Equal(t, []string{"soy"}, []string(loaded.Allergens))

	rd := loaded.ToRecommend()
	assert.Equal(t, "adobo", rd.ID)
	assert.Equal(t, 25.0, rd.Nutrients.Protein)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(config.DatabaseConfig{Driver: "mysql"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.RedisConfig{URL: "not a url"}, zerolog.Nop())
	assert.Error(t, err)
}
