package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/nutrisaur/backend/internal/models"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IPreferenceService defines the interface for the data that drives recommendations
type IPreferenceService interface {
	recommend.ContextProvider
	GetPreferences(ctx context.Context, userID uuid.UUID) (*types.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*types.PreferencesResponse, error)
	SubmitScreening(ctx context.Context, userID uuid.UUID, answers *types.ScreeningAnswers) (*types.ScreeningResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]models.ProfileHistory, error)
}

// ICatalogService defines the interface for the dish catalog
type ICatalogService interface {
	recommend.Catalog
	Load(ctx context.Context) (int, error)
	Import(ctx context.Context, req *types.ImportCatalogRequest) (*types.ImportCatalogResponse, error)
}

// IRecommendationService defines the interface for ranked dish lists
type IRecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID, filters []string) (*types.RecommendationResponse, error)
	ClearCache()
}

// CacheClearer is notified when cached recommendations go stale
type CacheClearer interface {
	ClearCache()
}

// ObjectFetcher reads catalog snapshots from object storage
type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}
