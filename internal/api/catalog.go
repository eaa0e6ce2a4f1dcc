package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutrisaur/backend/internal/middleware"
	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

type CatalogHandler struct {
	catalog service.ICatalogService
	auth    middleware.TokenValidator
	admins  []string
}

// NewCatalogHandler creates the handler. Only the admins usernames may import;
// with no admins the import route is not registered.
func NewCatalogHandler(catalog service.ICatalogService, auth middleware.TokenValidator, admins []string) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, auth: auth, admins: admins}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/catalog")
	catalog.Use(middleware.AuthMiddleware(h.auth))
	{
		catalog.GET("", h.GetCatalog)
		if len(h.admins) > 0 {
			catalog.POST("/import", middleware.RequireUsername(h.admins), h.Import)
		}
	}
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	dishes := h.catalog.Dishes()
	out := make([]gin.H, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, gin.H{
			"id":          d.ID,
			"name":        d.Name,
			"description": d.Description,
			"tags":        d.Tags.Codes(),
			"allergens":   d.Allergens.Names(),
			"nutrients":   d.Nutrients,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "dishes": out})
}

// Import reloads the catalog. An empty body uses the configured source.
func (h *CatalogHandler) Import(c *gin.Context) {
	var req types.ImportCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// file paths come from configuration only
	req.Path = ""

	res, err := h.catalog.Import(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
