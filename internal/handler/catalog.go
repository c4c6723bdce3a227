package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"plantchat/internal/service"
)

// CatalogHandler exposes the lookup services directly
type CatalogHandler struct {
	products   service.ProductSearcher
	guides     service.GuideSearcher
	categories service.CategoryLister
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(products service.ProductSearcher, guides service.GuideSearcher, categories service.CategoryLister) *CatalogHandler {
	return &CatalogHandler{products: products, guides: guides, categories: categories}
}

// SearchProducts handles GET /api/v1/products/search?q=
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	query, ok := requireQuery(c)
	if !ok {
		return
	}

	products, err := h.products.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"filters":  service.ExtractFilters(query),
		"products": products,
		"count":    len(products),
	})
}

// CareGuides handles GET /api/v1/care-guides?q=
func (h *CatalogHandler) CareGuides(c *gin.Context) {
	query, ok := requireQuery(c)
	if !ok {
		return
	}

	guides, err := h.guides.GetCareGuides(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get care guides: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"care_guides": guides,
		"count":       len(guides),
	})
}

// Categories handles GET /api/v1/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.categories.GetCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get categories: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

func requireQuery(c *gin.Context) (string, bool) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return "", false
	}
	return query, true
}
