package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile carries the nutrition-related data the recommender reads for a user.
type UserProfile struct {
	ID               uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username         string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	AgeMonths        *int           `json:"age_months"` // nil when unknown
	RiskScore        int            `gorm:"not null;default:0" json:"risk_score"`
	ScreeningAnswers string         `gorm:"type:text" json:"-"`
	ScreenedAt       *time.Time     `json:"screened_at"`
	AvoidFoods       StringList     `gorm:"type:text" json:"avoid_foods"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *UserProfile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
