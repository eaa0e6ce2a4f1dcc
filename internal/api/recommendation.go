package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrisaur/backend/internal/middleware"
	"github.com/pageza/nutrisaur/backend/internal/service"
)

// maxFilters bounds the filter list accepted from the query string
const maxFilters = 20

type RecommendationHandler struct {
	recommendations service.IRecommendationService
	auth            middleware.TokenValidator
	limiter         *middleware.RateLimiter
}

// NewRecommendationHandler creates the handler. limiter may be nil to disable rate limiting.
func NewRecommendationHandler(recommendations service.IRecommendationService, auth middleware.TokenValidator, limiter *middleware.RateLimiter) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		auth:            auth,
		limiter:         limiter,
	}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	recs := router.Group("/recommendations")
	recs.Use(middleware.AuthMiddleware(h.auth))
	{
		get := []gin.HandlerFunc{h.GetRecommendations}
		if h.limiter != nil {
			get = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, get...)
		}
		recs.GET("", get...)
		recs.POST("/cache/clear", h.ClearCache)
	}
}

// GetRecommendations returns the ranked dishes for ?filter=a&filter=b
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	filters := c.QueryArray("filter")
	if len(filters) > maxFilters {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many filters"})
		return
	}

	res, err := h.recommendations.Recommend(c.Request.Context(), userID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *RecommendationHandler) ClearCache(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	h.recommendations.ClearCache()
	c.JSON(http.StatusOK, gin.H{"message": "recommendation cache cleared"})
}
