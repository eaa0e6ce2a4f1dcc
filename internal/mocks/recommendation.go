package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

// MockRecommendationService is a mock implementation of the RecommendationService interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, userID uuid.UUID, filters []string) (*types.RecommendationResponse, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationService) ClearCache() {
	m.Called()
}

// MockCatalogService is a mock implementation of the CatalogService interface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Dishes() []recommend.Dish {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]recommend.Dish)
}

func (m *MockCatalogService) Load(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogService) Import(ctx context.Context, req *types.ImportCatalogRequest) (*types.ImportCatalogResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ImportCatalogResponse), args.Error(1)
}
