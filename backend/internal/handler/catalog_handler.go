package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"packsite/backend/internal/infra/catalogimg"
	response "packsite/backend/internal/infra/common"
	appLogger "packsite/backend/internal/infra/logger"
	catalogsvc "packsite/backend/internal/service/catalog"
)

// CatalogHandler exposes products, portfolio items and the static
// catalog image sets.
type CatalogHandler struct {
	service *catalogsvc.Service
	logger  *zap.SugaredLogger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(service *catalogsvc.Service) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  appLogger.S().With("component", "catalog.handler"),
	}
}

// ListProducts returns active products, localized.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.service.ListProducts(c.Request.Context(), c.Query("locale"), c.Query("category"))
	if err != nil {
		h.logger.Errorw("list products failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "list products failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": views}, nil)
}

// ListPortfolio returns active portfolio items, localized.
func (h *CatalogHandler) ListPortfolio(c *gin.Context) {
	views, err := h.service.ListPortfolio(c.Request.Context(), c.Query("locale"), c.Query("category"))
	if err != nil {
		h.logger.Errorw("list portfolio failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "list portfolio failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": views}, nil)
}

// CatalogImages returns the fixed catalogType to image-set mapping.
func (h *CatalogHandler) CatalogImages(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"items": catalogimg.All()}, nil)
}

// AdminListProducts returns every product, inactive ones included.
func (h *CatalogHandler) AdminListProducts(c *gin.Context) {
	entries, err := h.service.ListAllProducts(c.Request.Context())
	if err != nil {
		h.logger.Errorw("admin list products failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list products failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": entries}, nil)
}

// CreateProduct stores a new product.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var params catalogsvc.ProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.CreateProduct(c.Request.Context(), params)
	if err != nil {
		h.failCatalog(c, err, "create product failed")
		return
	}
	response.Created(c, gin.H{"product": entry}, nil)
}

// UpdateProduct replaces a product's fields.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var params catalogsvc.ProductParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.UpdateProduct(c.Request.Context(), id, params)
	if err != nil {
		h.failCatalog(c, err, "update product failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": entry}, nil)
}

// DeleteProduct removes a product.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.failCatalog(c, err, "delete product failed")
		return
	}
	response.NoContent(c)
}

// AdminListPortfolio returns every portfolio item, inactive ones
// included.
func (h *CatalogHandler) AdminListPortfolio(c *gin.Context) {
	entries, err := h.service.ListAllPortfolio(c.Request.Context())
	if err != nil {
		h.logger.Errorw("admin list portfolio failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list portfolio failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": entries}, nil)
}

// CreatePortfolio stores a new portfolio item.
func (h *CatalogHandler) CreatePortfolio(c *gin.Context) {
	var params catalogsvc.PortfolioParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.CreatePortfolio(c.Request.Context(), params)
	if err != nil {
		h.failCatalog(c, err, "create portfolio failed")
		return
	}
	response.Created(c, gin.H{"portfolio": entry}, nil)
}

// UpdatePortfolio replaces a portfolio item's fields.
func (h *CatalogHandler) UpdatePortfolio(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var params catalogsvc.PortfolioParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.UpdatePortfolio(c.Request.Context(), id, params)
	if err != nil {
		h.failCatalog(c, err, "update portfolio failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"portfolio": entry}, nil)
}

// DeletePortfolio removes a portfolio item.
func (h *CatalogHandler) DeletePortfolio(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.DeletePortfolio(c.Request.Context(), id); err != nil {
		h.failCatalog(c, err, "delete portfolio failed")
		return
	}
	response.NoContent(c)
}

// failCatalog maps the catalog service sentinels onto response codes.
func (h *CatalogHandler) failCatalog(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, catalogsvc.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, err.Error(), nil)
	case errors.Is(err, catalogsvc.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, err.Error(), nil)
	default:
		h.logger.Errorw(fallback, "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, fallback, nil)
	}
}
