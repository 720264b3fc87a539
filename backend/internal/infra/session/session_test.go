package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	domain "packsite/backend/internal/domain/user"
)

func TestManagerIssueAndParseRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	account := &domain.User{ID: 7, Username: "admin", Role: domain.RoleAdmin}
	issued, err := manager.Issue(account)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	if issued.Token == "" || issued.ID == "" {
		t.Fatalf("incomplete session: %+v", issued)
	}

	claims, err := manager.Parse(issued.Token)
	if err != nil {
		t.Fatalf("parse session: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "admin" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.SessionID != issued.ID {
		t.Fatalf("session id mismatch: %q vs %q", claims.SessionID, issued.ID)
	}
}

func TestManagerRejectsForeignSignature(t *testing.T) {
	issued, err := NewManager("secret-a", time.Hour).Issue(&domain.User{ID: 1, Username: "admin"})
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Parse(issued.Token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestRedisStoreLifecycle(t *testing.T) {
	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := NewRedisStore(rdb, "")
	ctx := context.Background()

	if err := store.Save(ctx, 1, "sess-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := store.Exists(ctx, 1, "sess-1")
	if err != nil || !ok {
		t.Fatalf("expected session to exist, ok=%v err=%v", ok, err)
	}

	if err := store.Delete(ctx, 1, "sess-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err = store.Exists(ctx, 1, "sess-1")
	if err != nil || ok {
		t.Fatalf("expected session gone, ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, 2, "sess-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := store.Exists(ctx, 2, "sess-2")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Fatal("expected expired session to be reported missing")
	}
}
