package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	response "packsite/backend/internal/infra/common"
	appLogger "packsite/backend/internal/infra/logger"
)

const maxUploadBytes = 8 * 1024 * 1024

// UploadHandler stores admin-uploaded content images (blog covers,
// section illustrations, product shots) under the static upload root
// and returns the path the frontend can reference.
type UploadHandler struct {
	storageRoot string
	logger      *zap.SugaredLogger
}

// NewUploadHandler constructs the handler. storageRoot is served as
// /uploads by the router.
func NewUploadHandler(storageRoot string) *UploadHandler {
	return &UploadHandler{
		storageRoot: storageRoot,
		logger:      appLogger.S().With("component", "upload.handler"),
	}
}

// UploadImage validates and stores one image from the "image" form
// field. Files get a UUID name so uploads never overwrite each other.
// The route sits behind the admin auth middleware.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "image file is required", nil)
		return
	}

	if file.Size == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "image file is empty", nil)
		return
	}
	if file.Size > maxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "image file is too large", nil)
		return
	}
	if !isSupportedImage(file) {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, "unsupported image format", nil)
		return
	}

	if err := os.MkdirAll(h.storageRoot, 0o755); err != nil {
		h.logger.Errorw("ensure upload dir failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "failed to prepare storage", nil)
		return
	}

	filename := generateFilename(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.storageRoot, filename)); err != nil {
		h.logger.Errorw("save image failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "failed to save image", nil)
		return
	}

	response.Created(c, gin.H{
		"url": fmt.Sprintf("/uploads/%s", filename),
	}, nil)
}

// generateFilename pairs a UUID with the original extension.
func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".png"
	}
	return uuid.NewString() + ext
}

// isSupportedImage allows the common web image content types.
func isSupportedImage(fileHeader *multipart.FileHeader) bool {
	contentType := fileHeader.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"),
		strings.HasPrefix(contentType, "image/png"),
		strings.HasPrefix(contentType, "image/gif"),
		strings.HasPrefix(contentType, "image/webp"):
		return true
	default:
		return false
	}
}
