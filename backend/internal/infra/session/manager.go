package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domain "packsite/backend/internal/domain/user"
)

const (
	claimSessionID = "jti"
	claimUsername  = "username"
	claimRole      = "role"
)

// Claims is the decoded identity carried by an admin session token.
type Claims struct {
	UserID    uint
	Username  string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// Session is a freshly issued admin session.
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// Manager signs and parses admin session tokens. Tokens are HS256 JWTs
// carrying a jti that the Store tracks, so logout revokes a session
// before its exp would expire it.
type Manager struct {
	secret string
	ttl    time.Duration
}

// NewManager constructs a session manager with the signing secret and
// session lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs a new session token for the given account.
func (m *Manager) Issue(account *domain.User) (Session, error) {
	if account == nil {
		return Session{}, fmt.Errorf("account required")
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(m.ttl)

	claims := jwt.MapClaims{
		"sub":          strconv.FormatUint(uint64(account.ID), 10),
		claimUsername:  account.Username,
		claimRole:      account.Role,
		"exp":          expiresAt.Unix(),
		claimSessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	return Session{Token: signed, ID: sessionID, ExpiresAt: expiresAt}, nil
}

// Parse validates the token signature and expiry and decodes the
// session claims. It does not consult the Store; revocation is the
// middleware's second check.
func (m *Manager) Parse(raw string) (Claims, error) {
	mapClaims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, mapClaims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("token invalid")
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, errors.New("missing subject")
	}
	id64, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("parse subject: %w", err)
	}

	sessionID, _ := mapClaims[claimSessionID].(string)
	if sessionID == "" {
		return Claims{}, errors.New("missing session id")
	}

	username, _ := mapClaims[claimUsername].(string)
	role, _ := mapClaims[claimRole].(string)

	var expiresAt time.Time
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return Claims{
		UserID:    uint(id64),
		Username:  username,
		Role:      role,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}
