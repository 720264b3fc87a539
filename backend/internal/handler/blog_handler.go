package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	response "packsite/backend/internal/infra/common"
	appLogger "packsite/backend/internal/infra/logger"
	blogsvc "packsite/backend/internal/service/blog"
)

// BlogHandler exposes the public blog read API and the admin blog and
// category CRUD.
type BlogHandler struct {
	service *blogsvc.Service
	logger  *zap.SugaredLogger
}

// NewBlogHandler constructs the handler.
func NewBlogHandler(service *blogsvc.Service) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  appLogger.S().With("component", "blog.handler"),
	}
}

// List returns published blogs, localized, optionally filtered by
// category slug.
func (h *BlogHandler) List(c *gin.Context) {
	cards, err := h.service.List(c.Request.Context(), c.Query("locale"), c.Query("category"), parseLimit(c))
	if err != nil {
		h.logger.Errorw("list blogs failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "list blogs failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": cards}, nil)
}

// GetBySlug returns one published blog with sections, catalog images
// and related posts. The view is counted here.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	detail, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), c.Query("locale"))
	if err != nil {
		if errors.Is(err, blogsvc.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound, "blog not found", nil)
			return
		}
		h.logger.Errorw("get blog failed", "error", err, "slug", c.Param("slug"))
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "get blog failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": detail}, nil)
}

// Categories returns the localized category list for the public filter
// bar.
func (h *BlogHandler) Categories(c *gin.Context) {
	views, err := h.service.Categories(c.Request.Context(), c.Query("locale"))
	if err != nil {
		h.logger.Errorw("list categories failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "list categories failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": views}, nil)
}

// AdminList returns all blogs, drafts included, with pagination.
func (h *BlogHandler) AdminList(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	entries, total, err := h.service.ListAll(c.Request.Context(), offset, pageSize)
	if err != nil {
		h.logger.Errorw("admin list blogs failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list blogs failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": entries}, pageMeta(page, pageSize, total, len(entries)))
}

// AdminGet returns one blog with every translation layer intact.
func (h *BlogHandler) AdminGet(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.failBlog(c, err, "load blog failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": entry}, nil)
}

// Create stores a new blog with its sections.
func (h *BlogHandler) Create(c *gin.Context) {
	var params blogsvc.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.Create(c.Request.Context(), params)
	if err != nil {
		h.failBlog(c, err, "create blog failed")
		return
	}
	response.Created(c, gin.H{"blog": entry}, nil)
}

// Update patches a blog and optionally replaces its section list.
func (h *BlogHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var params blogsvc.UpdateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		h.failBlog(c, err, "update blog failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"blog": entry}, nil)
}

// Delete removes a blog and its sections.
func (h *BlogHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.failBlog(c, err, "delete blog failed")
		return
	}
	response.NoContent(c)
}

// AdminCategories returns categories with all translations for the
// dashboard.
func (h *BlogHandler) AdminCategories(c *gin.Context) {
	entries, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Errorw("admin list categories failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list categories failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": entries}, nil)
}

// CreateCategory stores a new category.
func (h *BlogHandler) CreateCategory(c *gin.Context) {
	var params blogsvc.CategoryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.CreateCategory(c.Request.Context(), params)
	if err != nil {
		h.failBlog(c, err, "create category failed")
		return
	}
	response.Created(c, gin.H{"category": entry}, nil)
}

// UpdateCategory replaces a category's fields.
func (h *BlogHandler) UpdateCategory(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var params blogsvc.CategoryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.UpdateCategory(c.Request.Context(), id, params)
	if err != nil {
		h.failBlog(c, err, "update category failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"category": entry}, nil)
}

// DeleteCategory removes a category; blogs keep living with a null
// category.
func (h *BlogHandler) DeleteCategory(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.failBlog(c, err, "delete category failed")
		return
	}
	response.NoContent(c)
}

// failBlog maps the blog service sentinels onto response codes.
func (h *BlogHandler) failBlog(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, blogsvc.ErrNotFound), errors.Is(err, blogsvc.ErrCategoryNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, err.Error(), nil)
	case errors.Is(err, blogsvc.ErrDuplicateSlug):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateSlug, "slug already in use", nil)
	case errors.Is(err, blogsvc.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, err.Error(), nil)
	default:
		h.logger.Errorw(fallback, "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, fallback, nil)
	}
}
