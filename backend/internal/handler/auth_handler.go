package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	response "packsite/backend/internal/infra/common"
	appLogger "packsite/backend/internal/infra/logger"
	"packsite/backend/internal/middleware"
	authsvc "packsite/backend/internal/service/auth"
)

// AuthHandler exposes admin login, logout and the current-session
// profile.
type AuthHandler struct {
	service *authsvc.Service
	logger  *zap.SugaredLogger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service *authsvc.Service) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  appLogger.S().With("component", "auth.handler"),
	}
}

// Captcha returns a fresh login captcha, or reports that the captcha is
// disabled so the login form can skip the field.
func (h *AuthHandler) Captcha(c *gin.Context) {
	if !h.service.CaptchaEnabled() {
		response.Success(c, http.StatusOK, gin.H{"enabled": false}, nil)
		return
	}

	id, image, err := h.service.GenerateCaptcha(c.Request.Context(), c.ClientIP())
	if err != nil {
		if errors.Is(err, authsvc.ErrCaptchaRateLimited) {
			response.Fail(c, http.StatusTooManyRequests, response.ErrTooManyRequests, "captcha requests too frequent", nil)
			return
		}
		h.logger.Errorw("generate captcha failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "generate captcha failed", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"enabled":    true,
		"captcha_id": id,
		"image":      image,
	}, nil)
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var params authsvc.LoginParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrBadRequest, err.Error(), nil)
		return
	}

	result, err := h.service.Login(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrCaptchaInvalid):
			response.Fail(c, http.StatusBadRequest, response.ErrCaptchaInvalid, "captcha verification failed", nil)
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials, "invalid username or password", nil)
		default:
			h.logger.Errorw("login failed", "error", err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "login failed", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

// Logout revokes the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "not authenticated", nil)
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		h.logger.Errorw("logout failed", "error", err, "user_id", claims.UserID)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "logout failed", nil)
		return
	}

	response.NoContent(c)
}

// Me returns the account behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "not authenticated", nil)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, authsvc.ErrNotFound) {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "account no longer exists", nil)
			return
		}
		h.logger.Errorw("load profile failed", "error", err, "user_id", claims.UserID)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal, "load profile failed", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": profile}, nil)
}
