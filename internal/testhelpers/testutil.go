package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/nutrisaur/backend/internal/models"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
)

// TestPassword is the password of users made by CreateTestUser.
const TestPassword = "testpassword123"

// TestUser describes the preference data seeded for a test user.
type TestUser struct {
	Allergies []string
	Diets     []string
	AgeMonths *int
	RiskScore int
}

// CreateTestUser creates a user with a profile and the given preferences.
func CreateTestUser(t *testing.T, db *gorm.DB, prefs TestUser) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", id),
		PasswordHash: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.UserProfile{
		UserID:    id,
		Username:  "user_" + id.String()[:8],
		AgeMonths: prefs.AgeMonths,
		RiskScore: prefs.RiskScore,
	}
	require.NoError(t, db.Create(profile).Error)

	for _, a := range prefs.Allergies {
		require.NoError(t, db.Create(&models.Allergen{UserID: id, AllergenName: a, SeverityLevel: 1}).Error)
	}
	for _, d := range prefs.Diets {
		require.NoError(t, db.Create(&models.DietaryPreference{UserID: id, PreferenceType: d}).Error)
	}
	return user
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// SampleDishes is a small catalog covering the main tag families.
func SampleDishes() []recommend.Dish {
	return []recommend.Dish{
		{
			ID: "chicken-tinola", Name: "Chicken Tinola", Description: "ginger chicken soup with malunggay",
			Tags:      recommend.NewTagSet(recommend.TagChicken, recommend.TagSoup, recommend.TagHighProtein),
			Nutrients: recommend.Nutrients{Calories: 320, Protein: 28, Iron: 2, VitaminA: 300, VitaminC: 20},
		},
		{
			ID: "ginataang-gulay", Name: "Ginataang Gulay", Description: "squash and string beans in coconut milk",
			Tags:      recommend.NewTagSet(recommend.TagVegetarian, recommend.TagVegetable),
			Nutrients: recommend.Nutrients{Calories: 220, Protein: 5, VitaminA: 700, Fiber: 6},
		},
		{
			ID: "sinigang-hipon", Name: "Sinigang na Hipon", Description: "sour tamarind soup with shrimp",
			Allergens: recommend.NewAllergenSet(recommend.AllergenShellfish),
			Tags:      recommend.NewTagSet(recommend.TagSeafood, recommend.TagShellfish, recommend.TagSoup),
			Nutrients: recommend.Nutrients{Calories: 250, Protein: 22, VitaminC: 30},
		},
		{
			ID: "lugaw", Name: "Lugaw", Description: "soft rice porridge",
			Tags:      recommend.NewTagSet(recommend.TagRice, recommend.TagSoft),
			Nutrients: recommend.Nutrients{Calories: 180, Protein: 4},
		},
	}
}
