package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/testhelpers"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

type countingClearer struct{ calls int }

func (c *countingClearer) ClearCache() { c.calls++ }

func TestUserContext(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewPreferenceService(db, zerolog.Nop())

	user := testhelpers.CreateTestUser(t, db, testhelpers.TestUser{
		Allergies: []string{"Peanuts", "shrimp"},
		Diets:     []string{"Vegetarian"},
		AgeMonths: testhelpers.IntPtr(20),
		RiskScore: 65,
	})

	uc, err := svc.UserContext(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.True(t, uc.Allergies.Has(recommend.AllergenPeanuts))
	assert.True(t, uc.Allergies.Has(recommend.AllergenShellfish))
	assert.True(t, uc.Diets.Has(recommend.DietVegetarian))
	assert.Equal(t, 65, uc.RiskScore)
	assert.True(t, uc.AgeKnown)
	assert.Equal(t, 20, uc.AgeMonths)
}

func TestUserContextUnknownAge(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewPreferenceService(db, zerolog.Nop())
	user := testhelpers.CreateTestUser(t, db, testhelpers.TestUser{RiskScore: 10})

	uc, err := svc.UserContext(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.False(t, uc.AgeKnown)
	assert.Equal(t, 10, uc.RiskScore)
}

func TestUserContextNotFound(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewPreferenceService(db, zerolog.Nop())

	_, err := svc.UserContext(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, recommend.ErrUserNotFound)

	_, err = svc.UserContext(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, recommend.ErrUserNotFound)
}

func TestUpdatePreferences(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewPreferenceService(db, zerolog.Nop())
	clearer := &countingClearer{}
	svc.OnChange(clearer)

	user := testhelpers.CreateTestUser(t, db, testhelpers.TestUser{
		Allergies: []string{"peanuts"},
		Diets:     []string{"vegan"},
	})

	prefs, err := svc.UpdatePreferences(context.Background(), user.ID, &types.UpdatePreferencesRequest{
		Allergies:  []string{"milk", "egg", "milk"},
		AvoidFoods: []string{"ampalaya"},
		AgeMonths:  testhelpers.IntPtr(48),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"egg", "milk"}, prefs.Allergies)
	assert.Equal(t, []string{"vegan"}, prefs.DietaryPreferences, "omitted fields stay unchanged")
	assert.Equal(t, []string{"ampalaya"}, prefs.AvoidFoods)
	require.NotNil(t, prefs.AgeMonths)
	assert.Equal(t, 48, *prefs.AgeMonths)
	assert.Equal(t, 1, clearer.calls)

	history, err := svc.GetHistory(context.Background(), user.ID)
	require.NoError(t, err)
	fields := map[string]string{}
	for _, h := range history {
		fields[h.Field] = h.NewValue
	}
	assert.Equal(t, "milk,egg", fields["allergies"])
	assert.Equal(t, "ampalaya", fields["avoid_foods"])
	assert.Equal(t, "48", fields["age_months"])
	assert.NotContains(t, fields, "dietary_preferences")

	// an empty list clears
	prefs, err = svc.UpdatePreferences(context.Background(), user.ID, &types.UpdatePreferencesRequest{
		DietaryPreferences: []string{},
	})
	require.NoError(t, err)
	assert.Empty(t, prefs.DietaryPreferences)
	assert.Equal(t, 2, clearer.calls)
}

func TestUpdatePreferencesUnknownUser(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewPreferenceService(db, zerolog.Nop())
	clearer := &countingClearer{}
	svc.OnChange(clearer)

	_, err := svc.UpdatePreferences(context.Background(), uuid.New(), &types.UpdatePreferencesRequest{Allergies: []string{"soy"}})
	assert.ErrorIs(t, err, recommend.ErrUserNotFound)
	assert.Zero(t, clearer.calls)
}

func TestSubmitScreening(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewPreferenceService(db, zerolog.Nop())
	clearer := &countingClearer{}
	svc.OnChange(clearer)
	user := testhelpers.CreateTestUser(t, db, testhelpers.TestUser{})

	res, err := svc.SubmitScreening(context.Background(), user.ID, &types.ScreeningAnswers{
		WeightLoss:       "yes",
		FeedingBehavior:  "poor",
		DietaryDiversity: testhelpers.IntPtr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 65, res.RiskScore)
	assert.Equal(t, "high", res.Level)
	assert.Equal(t, 1, clearer.calls)

	uc, err := svc.UserContext(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 65, uc.RiskScore)

	prefs, err := svc.GetPreferences(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, prefs.ScreenedAt)
}
