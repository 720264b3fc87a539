package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domain "packsite/backend/internal/domain/user"
	"packsite/backend/internal/infra/captcha"
	"packsite/backend/internal/infra/logger"
	"packsite/backend/internal/infra/session"
	"packsite/backend/internal/repository"
)

// Sentinel errors the handlers map onto response codes.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCaptchaInvalid     = errors.New("captcha verification failed")
	ErrCaptchaRateLimited = errors.New("captcha requests too frequent")
	ErrNotFound           = errors.New("user not found")
)

// Service authenticates admin users and manages their revocable
// sessions.
type Service struct {
	users    *repository.UserRepository
	sessions *session.Manager
	registry session.Store
	captcha  *captcha.Manager // nil when the login captcha is disabled
	log      *zap.SugaredLogger
}

// NewService constructs the auth service. captchaMgr may be nil, in
// which case login skips captcha verification entirely.
func NewService(users *repository.UserRepository, sessions *session.Manager, registry session.Store, captchaMgr *captcha.Manager) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		registry: registry,
		captcha:  captchaMgr,
		log:      logger.S().With("component", "auth-service"),
	}
}

// LoginParams is the admin login payload. The captcha pair is only
// consulted when the captcha is enabled.
type LoginParams struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	CaptchaID     string `json:"captcha_id"`
	CaptchaAnswer string `json:"captcha_answer"`
}

// Profile is the safe projection of an admin account.
type Profile struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// LoginResult carries the issued session token and the account it
// belongs to.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Profile   `json:"user"`
}

// CaptchaEnabled reports whether login requires a captcha answer.
func (s *Service) CaptchaEnabled() bool {
	return s.captcha != nil
}

// GenerateCaptcha produces a login captcha image for the given client
// IP. Only valid when the captcha is enabled.
func (s *Service) GenerateCaptcha(ctx context.Context, ip string) (string, string, error) {
	if s.captcha == nil {
		return "", "", fmt.Errorf("captcha disabled")
	}
	id, image, err := s.captcha.Generate(ctx, ip)
	if err != nil {
		if errors.Is(err, captcha.ErrRateLimited) {
			return "", "", ErrCaptchaRateLimited
		}
		return "", "", fmt.Errorf("generate captcha: %w", err)
	}
	return id, image, nil
}

// Login verifies the captcha (when enabled) and the credentials, then
// issues a session token and registers it for revocation. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, params.CaptchaID, params.CaptchaAnswer); err != nil {
			if errors.Is(err, captcha.ErrCaptchaNotFound) || errors.Is(err, captcha.ErrCaptchaMismatch) {
				return nil, ErrCaptchaInvalid
			}
			return nil, fmt.Errorf("verify captcha: %w", err)
		}
	}

	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(params.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	issued, err := s.sessions.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	if err := s.registry.Save(ctx, account.ID, issued.ID, issued.ExpiresAt); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.log.Warnw("last login update failed", "user_id", account.ID, "error", err)
	} else {
		account.LastLoginAt = &now
	}

	return &LoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      toProfile(account),
	}, nil
}

// Logout revokes the session behind the given claims. Revoking an
// already revoked session is a no-op.
func (s *Service) Logout(ctx context.Context, claims session.Claims) error {
	if err := s.registry.Delete(ctx, claims.UserID, claims.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// GetProfile loads the account behind an authenticated session.
func (s *Service) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	account, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	profile := toProfile(account)
	return &profile, nil
}

func toProfile(account *domain.User) Profile {
	return Profile{
		ID:          account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Role:        account.Role,
		LastLoginAt: account.LastLoginAt,
	}
}
