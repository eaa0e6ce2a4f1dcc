package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/nutrisaur/backend/internal/models"
)

// Models lists every table the service owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.DietaryPreference{},
		&models.Allergen{},
		&models.ProfileHistory{},
		&models.Dish{},
	}
}

// RunMigrations creates or updates the schema for all models
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate %s schema: %w", db.Dialector.Name(), err)
	}
	return nil
}
