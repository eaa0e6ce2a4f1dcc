package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileHistory records a change to the data that drives recommendations
type ProfileHistory struct {
	gorm.Model
	UserID    string    `gorm:"index;not null"`
	Field     string    `gorm:"not null"` // allergies, dietary_preferences, age_months, avoid_foods, risk_score
	OldValue  string    `gorm:"type:text"`
	NewValue  string    `gorm:"type:text"`
	ChangedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProfileHistory
func (ProfileHistory) TableName() string {
	return "profile_history"
}
