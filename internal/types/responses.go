package types

import (
	"time"

	"github.com/google/uuid"
)

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}

// PreferencesResponse is a user's stored recommendation inputs
type PreferencesResponse struct {
	UserID             uuid.UUID  `json:"user_id"`
	Username           string     `json:"username"`
	AgeMonths          *int       `json:"age_months"`
	RiskScore          int        `json:"risk_score"`
	ScreenedAt         *time.Time `json:"screened_at,omitempty"`
	Allergies          []string   `json:"allergies"`
	DietaryPreferences []string   `json:"dietary_preferences"`
	AvoidFoods         []string   `json:"avoid_foods"`
}

// ScreeningResponse reports the computed risk score
type ScreeningResponse struct {
	RiskScore int    `json:"risk_score"`
	Level     string `json:"level"`
}

// RecommendedDish is one ranked dish
type RecommendedDish struct {
	Rank        int      `json:"rank"`
	RankLabel   string   `json:"rank_label"`
	Score       float64  `json:"score"`
	ScoreLabel  string   `json:"score_label"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Allergens   []string `json:"allergens"`
}

// RecommendationResponse is the ranked list for one request
type RecommendationResponse struct {
	Filters []string          `json:"filters"`
	Source  string            `json:"source"`
	Count   int               `json:"count"`
	Dishes  []RecommendedDish `json:"dishes"`
}

// ImportCatalogResponse reports a catalog import
type ImportCatalogResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}
