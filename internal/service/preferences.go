package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/nutrisaur/backend/internal/models"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

// PreferenceService stores the allergies, diets, age and screening results that
// drive recommendations, and serves them to the engine as a recommend.ContextProvider.
type PreferenceService struct {
	db  *gorm.DB
	log zerolog.Logger

	mu       sync.RWMutex
	clearers []CacheClearer
}

// Ensure PreferenceService implements IPreferenceService
var _ IPreferenceService = (*PreferenceService)(nil)

//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPreferenceService(db *gorm.DB, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{
		db:  db,
		log: log.With().Str("component", "preferences").Logger(),
	}
}

// OnChange registers a cache to clear whenever stored preferences change.
func (s *PreferenceService) OnChange(c CacheClearer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearers = append(s.clearers, c)
}

func (s *PreferenceService) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clearers {
		c.ClearCache()
	}
}

// UserContext implements recommend.ContextProvider.
func (s *PreferenceService) UserContext(ctx context.Context, userID string) (recommend.UserContext, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return recommend.UserContext{}, fmt.Errorf("%w: %q", recommend.ErrUserNotFound, userID)
	}

	profile, err := s.profile(ctx, s.db, id)
	if err != nil {
		return recommend.UserContext{}, err
	}
	allergies, err := allergenNames(ctx, s.db, id)
	if err != nil {
		return recommend.UserContext{}, err
	}
	diets, err := dietNames(ctx, s.db, id)
	if err != nil {
		return recommend.UserContext{}, err
	}

	age := -1
	if profile.AgeMonths != nil {
		age = *profile.AgeMonths
	}
	return recommend.NewUserContext(allergies, diets, profile.RiskScore, age), nil
}

func (s *PreferenceService) GetPreferences(ctx context.Context, userID uuid.UUID) (*types.PreferencesResponse, error) {
	profile, err := s.profile(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	allergies, err := allergenNames(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	diets, err := dietNames(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	avoid := []string(profile.AvoidFoods)
	if avoid == nil {
		avoid = []string{}
	}
	return &types.PreferencesResponse{
		UserID:             userID,
		Username:           profile.Username,
		AgeMonths:          profile.AgeMonths,
		RiskScore:          profile.RiskScore,
		ScreenedAt:         profile.ScreenedAt,
		Allergies:          allergies,
		DietaryPreferences: diets,
		AvoidFoods:         avoid,
	}, nil
}

// UpdatePreferences replaces the fields present in req, records each change in the
// profile history and clears cached recommendations.
func (s *PreferenceService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*types.PreferencesResponse, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profile(ctx, tx, userID)
		if err != nil {
			return err
		}

		if req.Allergies != nil {
			old, err := allergenNames(ctx, tx, userID)
			if err != nil {
				return err
			}
			if err := replaceAllergens(tx, userID, req.Allergies); err != nil {
				return err
			}
			if err := recordChange(tx, userID, "allergies", strings.Join(old, ","), strings.Join(clean(req.Allergies), ",")); err != nil {
				return err
			}
		}

		if req.DietaryPreferences != nil {
			old, err := dietNames(ctx, tx, userID)
			if err != nil {
				return err
			}
			if err := replaceDiets(tx, userID, req.DietaryPreferences); err != nil {
				return err
			}
			if err := recordChange(tx, userID, "dietary_preferences", strings.Join(old, ","), strings.Join(clean(req.DietaryPreferences), ",")); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if req.AvoidFoods != nil {
			avoid := models.StringList(clean(req.AvoidFoods))
			updates["avoid_foods"] = avoid
			if err := recordChange(tx, userID, "avoid_foods", strings.Join(profile.AvoidFoods, ","), strings.Join(avoid, ",")); err != nil {
				return err
			}
		}
		if req.AgeMonths != nil {
			updates["age_months"] = *req.AgeMonths
			if err := recordChange(tx, userID, "age_months", formatAge(profile.AgeMonths), formatAge(req.AgeMonths)); err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(profile).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID.String()).Msg("preferences updated")
	s.notify()
	return s.GetPreferences(ctx, userID)
}

// SubmitScreening scores the screening answers and stores the result.
func (s *PreferenceService) SubmitScreening(ctx context.Context, userID uuid.UUID, answers *types.ScreeningAnswers) (*types.ScreeningResponse, error) {
	score := CalculateRiskScore(answers)
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode screening answers: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := s.profile(ctx, tx, userID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(profile).Updates(map[string]interface{}{
			"risk_score":        score,
			"screening_answers": string(raw),
			"screened_at":       now,
		}).Error; err != nil {
			return fmt.Errorf("failed to store screening: %w", err)
		}
		return recordChange(tx, userID, "risk_score", strconv.Itoa(profile.RiskScore), strconv.Itoa(score))
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID.String()).Int("risk_score", score).Msg("screening submitted")
	s.notify()
	return &types.ScreeningResponse{RiskScore: score, Level: RiskLevel(score)}, nil
}

// GetHistory returns the recorded preference changes, newest first.
func (s *PreferenceService) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error) {
	var history []models.ProfileHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("changed_at desc, id desc").
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile history: %w", err)
	}
	return history, nil
}

func (s *PreferenceService) profile(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recommend.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

func allergenNames(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]string, error) {
	names := []string{}
	if err := db.WithContext(ctx).Model(&models.Allergen{}).
		Where("user_id = ?", userID).
		Order("allergen_name").
		Pluck("allergen_name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to load allergens: %w", err)
	}
	return names, nil
}

func dietNames(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]string, error) {
	names := []string{}
	if err := db.WithContext(ctx).Model(&models.DietaryPreference{}).
		Where("user_id = ?", userID).
		Order("preference_type").
		Pluck("preference_type", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to load dietary preferences: %w", err)
	}
	return names, nil
}

func replaceAllergens(tx *gorm.DB, userID uuid.UUID, names []string) error {
	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
		return fmt.Errorf("failed to clear allergens: %w", err)
	}
	for _, name := range clean(names) {
		if err := tx.Create(&models.Allergen{UserID: userID, AllergenName: name, SeverityLevel: 1}).Error; err != nil {
			return fmt.Errorf("failed to add allergen %q: %w", name, err)
		}
	}
	return nil
}

func replaceDiets(tx *gorm.DB, userID uuid.UUID, prefs []string) error {
	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.DietaryPreference{}).Error; err != nil {
		return fmt.Errorf("failed to clear dietary preferences: %w", err)
	}
	for _, pref := range clean(prefs) {
		if err := tx.Create(&models.DietaryPreference{UserID: userID, PreferenceType: pref}).Error; err != nil {
			return fmt.Errorf("failed to add dietary preference %q: %w", pref, err)
		}
	}
	return nil
}

func recordChange(tx *gorm.DB, userID uuid.UUID, field, oldValue, newValue string) error {
	if oldValue == newValue {
		return nil
	}
	entry := models.ProfileHistory{
		UserID:    userID.String(),
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		ChangedAt: time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record %s change: %w", field, err)
	}
	return nil
}

// clean trims entries, drops blanks and duplicates, and keeps the first spelling.
func clean(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func formatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}
