package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domain "packsite/backend/internal/domain/user"
	"packsite/backend/internal/infra/session"
)

// brokenStore simulates a session registry outage.
type brokenStore struct{}

func (brokenStore) Save(context.Context, uint, string, time.Time) error { return nil }
func (brokenStore) Exists(context.Context, uint, string) (bool, error) {
	return false, errors.New("registry down")
}
func (brokenStore) Delete(context.Context, uint, string) error { return nil }

func newProtectedRouter(t *testing.T, registry session.Store) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := session.NewManager("mw-secret", time.Hour)
	r := gin.New()
	r.GET("/guarded", NewSessionMiddleware(manager, registry).Handle(), func(c *gin.Context) {
		claims, ok := ActorFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r, manager
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareRejectsMissingAndGarbageTokens(t *testing.T) {
	r, _ := newProtectedRouter(t, session.NewMemoryStore())

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}
	if w := request(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", w.Code)
	}
}

func TestMiddlewareAcceptsRegisteredSession(t *testing.T) {
	registry := session.NewMemoryStore()
	r, manager := newProtectedRouter(t, registry)

	issued, err := manager.Issue(&domain.User{ID: 3, Username: "admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := registry.Save(context.Background(), 3, issued.ID, issued.ExpiresAt); err != nil {
		t.Fatalf("register: %v", err)
	}

	w := request(r, issued.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMiddlewareRejectsRevokedSession(t *testing.T) {
	registry := session.NewMemoryStore()
	r, manager := newProtectedRouter(t, registry)

	// A validly signed token whose session was never registered, as
	// after a logout.
	issued, err := manager.Issue(&domain.User{ID: 4, Username: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := request(r, issued.Token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", w.Code)
	}
}

func TestMiddlewareSurfacesRegistryOutage(t *testing.T) {
	r, manager := newProtectedRouter(t, brokenStore{})

	issued, err := manager.Issue(&domain.User{ID: 5, Username: "admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// An unreachable registry is a 503, not a silent 401: the token may
	// still be perfectly valid.
	w := request(r, issued.Token)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
