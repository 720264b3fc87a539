package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	response "packsite/backend/internal/infra/common"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/infra/session"
)

const claimsContextKey = "session_claims"

// SessionMiddleware protects admin routes: it validates the Bearer
// session token and then checks the session registry, so a logged-out
// token is rejected even before its exp would expire it.
type SessionMiddleware struct {
	manager  *session.Manager
	registry session.Store
}

// NewSessionMiddleware constructs the middleware.
func NewSessionMiddleware(manager *session.Manager, registry session.Store) *SessionMiddleware {
	return &SessionMiddleware{manager: manager, registry: registry}
}

// Handle returns the gin middleware. On success the decoded claims are
// stored on the context for the handlers.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "missing authorization header", nil)
			c.Abort()
			return
		}

		claims, err := m.manager.Parse(strings.TrimSpace(header[7:]))
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "invalid session token", nil)
			c.Abort()
			return
		}

		alive, err := m.registry.Exists(c.Request.Context(), claims.UserID, claims.SessionID)
		if err != nil {
			logger.S().Warnw("session registry check failed", "user_id", claims.UserID, "error", err)
			response.Fail(c, http.StatusServiceUnavailable, response.ErrUnavailable, "session registry unavailable", nil)
			c.Abort()
			return
		}
		if !alive {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthorized, "session revoked or expired", nil)
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ActorFromContext returns the authenticated session claims placed by
// the middleware.
func ActorFromContext(c *gin.Context) (session.Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return session.Claims{}, false
	}
	claims, ok := value.(session.Claims)
	return claims, ok
}
