package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	response "packsite/backend/internal/infra/common"
	appLogger "packsite/backend/internal/infra/logger"
	articlesvc "packsite/backend/internal/service/article"
)

// ArticleHandler exposes the public article read API and the admin
// article CRUD.
type ArticleHandler struct {
	service *articlesvc.Service
	logger  *zap.SugaredLogger
}

// NewArticleHandler constructs the handler.
func NewArticleHandler(service *articlesvc.Service) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		logger:  appLogger.S().With("component", "article.handler"),
	}
}

// List returns published articles, localized, optionally filtered by
// category.
func (h *ArticleHandler) List(c *gin.Context) {
	cards, err := h.service.List(c.Request.Context(), c.Query("locale"), c.Query("category"), parseLimit(c))
	if err != nil {
		h.logger.Errorw("list articles failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "list articles failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": cards}, nil)
}

// GetBySlug returns one published article with related posts. The view
// is counted here.
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	detail, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), c.Query("locale"))
	if err != nil {
		if errors.Is(err, articlesvc.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound, "article not found", nil)
			return
		}
		h.logger.Errorw("get article failed", "error", err, "slug", c.Param("slug"))
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "get article failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"article": detail}, nil)
}

// AdminList returns all articles regardless of status, with pagination.
func (h *ArticleHandler) AdminList(c *gin.Context) {
	page, pageSize, offset := parsePagination(c)

	entries, total, err := h.service.ListAll(c.Request.Context(), offset, pageSize)
	if err != nil {
		h.logger.Errorw("admin list articles failed", "error", err)
		response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "list articles failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": entries}, pageMeta(page, pageSize, total, len(entries)))
}

// AdminGet returns one article with both language layers intact.
func (h *ArticleHandler) AdminGet(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.failArticle(c, err, "load article failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"article": entry}, nil)
}

// Create stores a new article.
func (h *ArticleHandler) Create(c *gin.Context) {
	var params articlesvc.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.Create(c.Request.Context(), params)
	if err != nil {
		h.failArticle(c, err, "create article failed")
		return
	}
	response.Created(c, gin.H{"article": entry}, nil)
}

// Update patches an article, including status transitions.
func (h *ArticleHandler) Update(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	var params articlesvc.UpdateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	entry, err := h.service.Update(c.Request.Context(), id, params)
	if err != nil {
		h.failArticle(c, err, "update article failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"article": entry}, nil)
}

// Delete removes an article.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "invalid id", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.failArticle(c, err, "delete article failed")
		return
	}
	response.NoContent(c)
}

// failArticle maps the article service sentinels onto response codes.
func (h *ArticleHandler) failArticle(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, articlesvc.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound, err.Error(), nil)
	case errors.Is(err, articlesvc.ErrDuplicateSlug):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateSlug, "slug already in use", nil)
	case errors.Is(err, articlesvc.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation, err.Error(), nil)
	default:
		h.logger.Errorw(fallback, "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, fallback, nil)
	}
}
