package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrisaur/backend/internal/api"
	"github.com/pageza/nutrisaur/backend/internal/metrics"
	"github.com/pageza/nutrisaur/backend/internal/middleware"
)

// Deps are the pieces the router wires together
type Deps struct {
	Log            zerolog.Logger
	CORSOrigins    []string
	DB             api.HealthChecker
	Auth           *api.AuthHandler
	Preferences    *api.PreferenceHandler
	Recommendation *api.RecommendationHandler
	Catalog        *api.CatalogHandler
}

// SetupRouter configures the application routes
//
//nolint:gocritic // Deps holds a zerolog.Logger by value
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Log),
		middleware.RequestLogger(deps.Log),
		metrics.Middleware(),
		middleware.CORS(deps.CORSOrigins),
		middleware.ErrorHandler(),
	)

	health := api.HealthCheck(deps.DB)
	router.GET("/health", health)
	router.GET("/api/health", health)
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	deps.Auth.RegisterRoutes(v1)
	deps.Preferences.RegisterRoutes(v1)
	deps.Recommendation.RegisterRoutes(v1)
	deps.Catalog.RegisterRoutes(v1)

	return router
}
