package coffeeshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
)

// CategoryAPI wires menu category endpoints to the catalog service.
type CategoryAPI struct {
	service catalogports.Service
}

// NewCategoryAPI creates a CategoryAPI backed by the provided service.
func NewCategoryAPI(service catalogports.Service) CategoryAPI {
	return CategoryAPI{service: service}
}

// Get /api/v1/categories
// List menu categories
func (api *CategoryAPI) ListCategories(c *gin.Context) {
	offset, ok := parseQueryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit", 0)
	if !ok {
		return
	}
	categories, err := api.service.ListCategories(c.Request.Context(), catalogports.Page{Offset: offset, Limit: limit})
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategories(categories))
}

// Get /api/v1/categories/:categoryId
// Fetch a category
func (api *CategoryAPI) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	category, err := api.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategory(category))
}

// Post /api/v1/categories
// Create a category (admin)
func (api *CategoryAPI) CreateCategory(c *gin.Context) {
	var payload catalogmapper.CreateCategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := catalogmapper.ToDomainCategory(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateCategory(c.Request.Context(), category)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainCategory(saved))
}

// Put /api/v1/categories/:categoryId
// Update a category (admin)
func (api *CategoryAPI) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	var payload catalogmapper.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateCategory(c.Request.Context(), id, catalogmapper.ToCategoryPatch(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategory(updated))
}

// Delete /api/v1/categories/:categoryId
// Remove a category (admin)
func (api *CategoryAPI) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	if err := api.service.DeleteCategory(c.Request.Context(), id); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
