package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutrisaur/backend/internal/models"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

// MockPreferenceService is a mock implementation of the PreferenceService interface
type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) UserContext(ctx context.Context, userID string) (recommend.UserContext, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(recommend.UserContext), args.Error(1)
}

func (m *MockPreferenceService) GetPreferences(ctx context.Context, userID uuid.UUID) (*types.PreferencesResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PreferencesResponse), args.Error(1)
}

func (m *MockPreferenceService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*types.PreferencesResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PreferencesResponse), args.Error(1)
}

func (m *MockPreferenceService) SubmitScreening(ctx context.Context, userID uuid.UUID, answers *types.ScreeningAnswers) (*types.ScreeningResponse, error) {
	args := m.Called(ctx, userID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ScreeningResponse), args.Error(1)
}

func (m *MockPreferenceService) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProfileHistory), args.Error(1)
}
