package recommend

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned by a ContextProvider that has no data for the user.
var ErrUserNotFound = errors.New("user context not found")

// UserContext is the per-request snapshot of a user's constraints.
type UserContext struct {
	Allergies AllergenSet
	Diets     DietSet
	// RiskScore is the 0-100 malnutrition risk indicator.
	RiskScore int
	AgeMonths int
	AgeKnown  bool
}

// NewUserContext builds a UserContext from free-text allergy and diet entries.
// A negative age means the age is unknown. The risk score is clamped to 0-100.
func NewUserContext(allergies, diets []string, riskScore, ageMonths int) UserContext {
	uc := UserContext{
		Allergies: ParseAllergenSet(allergies),
		Diets:     ParseDietSet(diets),
		RiskScore: clampRisk(riskScore),
	}
	if ageMonths >= 0 {
		uc.AgeMonths = ageMonths
		uc.AgeKnown = true
	}
	return uc
}

func clampRisk(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ContextProvider supplies a user's context. It may block (e.g. a database query).
// An error, including ErrUserNotFound, makes the engine fall back to unfiltered ranking.
// A context with no allergies, diets, risk or age is valid and ranked normally.
type ContextProvider interface {
	UserContext(ctx context.Context, userID string) (UserContext, error)
}

// Catalog enumerates dishes in their catalog order. Implementations must return a
// slice the engine may read but never modifies.
type Catalog interface {
	Dishes() []Dish
}

// StaticCatalog is a Catalog over a fixed slice.
type StaticCatalog []Dish

// Dishes implements Catalog.
func (c StaticCatalog) Dishes() []Dish { return c }

// FilterRequest is one recommendation request.
type FilterRequest struct {
	UserID  string
	Filters []string
	User    UserContext
}
