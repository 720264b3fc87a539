package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "packsite/backend/internal/domain/user"
	"packsite/backend/internal/infra/session"
	"packsite/backend/internal/repository"
)

func newTestService(t *testing.T) (*Service, session.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepository(db)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := users.Create(context.Background(), &domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		DisplayName:  "ผู้ดูแลระบบ",
		Role:         domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	registry := session.NewMemoryStore()
	manager := session.NewManager("test-secret", time.Hour)
	return NewService(users, manager, registry, nil), registry
}

func TestLoginIssuesRegisteredSession(t *testing.T) {
	svc, registry := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginParams{Username: "admin", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.User.Username != "admin" || result.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected profile: %+v", result.User)
	}
	if result.User.LastLoginAt == nil {
		t.Fatal("login should record the last login time")
	}

	claims, err := session.NewManager("test-secret", time.Hour).Parse(result.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	alive, err := registry.Exists(ctx, claims.UserID, claims.SessionID)
	if err != nil || !alive {
		t.Fatalf("expected session registered, alive=%v err=%v", alive, err)
	}
}

func TestLoginHidesWhichCredentialFailed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, LoginParams{Username: "admin", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginParams{Username: "nobody", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginParams{Username: "", Password: ""}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, registry := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginParams{Username: "admin", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := session.NewManager("test-secret", time.Hour).Parse(result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	alive, err := registry.Exists(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if alive {
		t.Fatal("expected session revoked after logout")
	}

	// Revoking twice is a no-op.
	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetProfile(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCaptchaDisabledWithoutManager(t *testing.T) {
	svc, _ := newTestService(t)

	if svc.CaptchaEnabled() {
		t.Fatal("captcha should be disabled when no manager is wired")
	}
	if _, _, err := svc.GenerateCaptcha(context.Background(), "10.0.0.1"); err == nil {
		t.Fatal("expected captcha generation to fail when disabled")
	}
}
