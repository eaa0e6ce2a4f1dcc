package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required,min=8"`
	Username           string   `json:"username" binding:"required,min=3,max=50"`
	AgeMonths          *int     `json:"age_months" binding:"omitempty,min=0,max=1500"`
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdatePreferencesRequest replaces the fields that are present.
// A nil slice leaves that field unchanged; an empty slice clears it.
type UpdatePreferencesRequest struct {
	Allergies          []string `json:"allergies"`
	DietaryPreferences []string `json:"dietary_preferences"`
	AvoidFoods         []string `json:"avoid_foods"`
	AgeMonths          *int     `json:"age_months" binding:"omitempty,min=0,max=1500"`
}

// ScreeningAnswers are the malnutrition screening questionnaire answers
type ScreeningAnswers struct {
	WeightLoss       string   `json:"weight_loss" binding:"omitempty,oneof=yes no not_sure"`
	Swelling         string   `json:"swelling" binding:"omitempty,oneof=yes no"`
	FeedingBehavior  string   `json:"feeding_behavior" binding:"omitempty,oneof=good moderate poor"`
	PhysicalSigns    []string `json:"physical_signs"`
	DietaryDiversity *int     `json:"dietary_diversity" binding:"omitempty,min=0"`
}

// ImportCatalogRequest optionally overrides the configured catalog source
type ImportCatalogRequest struct {
	Source string `json:"source" binding:"omitempty,oneof=file s3"`
	Path   string `json:"path"`
	Key    string `json:"key"`
}
