package coffeeshopserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/beandock/coffeeshop-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/beandock/coffeeshop-api/internal/domains/catalog/ports"
	apierrors "github.com/beandock/coffeeshop-api/internal/shared/errors"
)

// ProductAPI wires menu product endpoints to the catalog service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /api/v1/products
// List products with optional category/availability/search filters
func (api *ProductAPI) ListProducts(c *gin.Context) {
	filter, ok := parseProductFilter(c)
	if !ok {
		return
	}
	products, err := api.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Get /api/v1/products/:productId
// Fetch a product
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Post /api/v1/products
// Create a product (admin)
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload catalogmapper.CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := catalogmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainProduct(saved))
}

// Put /api/v1/products/:productId
// Update a product (admin)
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload catalogmapper.UpdateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), id, catalogmapper.ToProductPatch(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(updated))
}

// Delete /api/v1/products/:productId
// Remove a product (admin)
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseProductFilter(c *gin.Context) (catalogports.ProductFilter, bool) {
	var filter catalogports.ProductFilter
	offset, ok := parseQueryInt(c, "skip", 0)
	if !ok {
		return filter, false
	}
	limit, ok := parseQueryInt(c, "limit", 0)
	if !ok {
		return filter, false
	}
	filter.Offset = offset
	filter.Limit = limit
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid category_id query parameter"))
			return filter, false
		}
		filter.CategoryID = id
	}
	if raw := c.Query("available_only"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid available_only query parameter"))
			return filter, false
		}
		filter.AvailableOnly = available
	}
	return filter, true
}
