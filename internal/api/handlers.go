package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutrisaur/backend/internal/middleware"
	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/pageza/nutrisaur/backend/internal/service"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheck returns the health status of the API
func HealthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Nutrisaur API is running",
			"version": "v1.0.0",
		})
	}
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		status, msg = http.StatusNotFound, "profile not found"
	case errors.Is(err, service.ErrUserExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrCatalogEmpty):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
