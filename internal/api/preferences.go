package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrisaur/backend/internal/middleware"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

type PreferenceHandler struct {
	preferences service.IPreferenceService
	auth        middleware.TokenValidator
}

func NewPreferenceHandler(preferences service.IPreferenceService, auth middleware.TokenValidator) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences, auth: auth}
}

func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences")
	prefs.Use(middleware.AuthMiddleware(h.auth))
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.UpdatePreferences)
		prefs.GET("/history", h.GetHistory)
		prefs.POST("/screening", h.SubmitScreening)
	}
}

func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	prefs, err := h.preferences.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.preferences.UpdatePreferences(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *PreferenceHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	history, err := h.preferences.GetHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(history))
	for _, entry := range history {
		out = append(out, gin.H{
			"field":      entry.Field,
			"old_value":  entry.OldValue,
			"new_value":  entry.NewValue,
			"changed_at": entry.ChangedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

func (h *PreferenceHandler) SubmitScreening(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var answers types.ScreeningAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.preferences.SubmitScreening(c.Request.Context(), userID, &answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
