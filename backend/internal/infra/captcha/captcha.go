// Package captcha guards the admin login endpoint with a digit image
// captcha. Answers live in Redis under a short TTL; generation is
// rate-limited per IP so the image endpoint cannot be farmed.
package captcha

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
)

var (
	ErrCaptchaNotFound = errors.New("captcha not found or expired")
	ErrCaptchaMismatch = errors.New("captcha code mismatch")
	ErrRateLimited     = errors.New("captcha requests too frequent")
)

// Manager generates captcha images, stores their answers and verifies
// submissions. Verification is single-use: the stored answer is deleted
// before comparison, matched or not.
type Manager struct {
	store   *redis.Client
	driver  base64Captcha.Driver
	prefix  string
	ttl     time.Duration
	maxHits int64
	rlTTL   time.Duration
}

// Options aggregates image parameters and the per-IP generation limit.
type Options struct {
	Prefix          string
	TTL             time.Duration
	Width           int
	Height          int
	Length          int
	MaxSkew         float64
	DotCount        int
	RateLimitPerMin int
	RateLimitWindow time.Duration
}

const (
	defaultPrefix  = "captcha"
	defaultTTL     = 5 * time.Minute
	defaultWidth   = 240
	defaultHeight  = 80
	defaultLength  = 5
	defaultMaxSkew = 0.7
	defaultDot     = 80
)

// NewManager constructs a captcha manager over the given Redis client.
func NewManager(rdb *redis.Client, opts Options) *Manager {
	if rdb == nil {
		panic("captcha manager requires redis client")
	}

	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}
	length := opts.Length
	if length <= 0 {
		length = defaultLength
	}
	maxSkew := opts.MaxSkew
	if maxSkew <= 0 {
		maxSkew = defaultMaxSkew
	}
	dotCount := opts.DotCount
	if dotCount <= 0 {
		dotCount = defaultDot
	}

	maxHits := opts.RateLimitPerMin
	if maxHits < 0 {
		maxHits = 0
	}
	rlTTL := opts.RateLimitWindow
	if rlTTL <= 0 {
		rlTTL = time.Minute
	}

	return &Manager{
		store:   rdb,
		driver:  base64Captcha.NewDriverDigit(height, width, length, maxSkew, dotCount),
		prefix:  prefix,
		ttl:     ttl,
		maxHits: int64(maxHits),
		rlTTL:   rlTTL,
	}
}

// Generate produces a captcha image (base64) plus its id, caching the
// answer under the configured TTL.
func (m *Manager) Generate(ctx context.Context, ip string) (string, string, error) {
	if err := m.checkRateLimit(ctx, ip); err != nil {
		return "", "", err
	}

	id, content, answer := m.driver.GenerateIdQuestionAnswer()

	item, err := m.driver.DrawCaptcha(content)
	if err != nil {
		return "", "", fmt.Errorf("draw captcha: %w", err)
	}

	if err := m.store.Set(ctx, m.key(id), strings.ToLower(answer), m.ttl).Err(); err != nil {
		return "", "", fmt.Errorf("store captcha: %w", err)
	}

	return id, item.EncodeB64string(), nil
}

// Verify compares a submitted answer against the cached one. The cached
// answer is consumed either way.
func (m *Manager) Verify(ctx context.Context, id string, answer string) error {
	if strings.TrimSpace(id) == "" {
		return ErrCaptchaNotFound
	}

	key := m.key(id)
	stored, err := m.store.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCaptchaNotFound
		}
		return fmt.Errorf("get captcha: %w", err)
	}

	if err := m.store.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete captcha: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(answer), stored) {
		return ErrCaptchaMismatch
	}

	return nil
}

func (m *Manager) key(id string) string {
	return fmt.Sprintf("%s:%s", m.prefix, id)
}

// checkRateLimit counts generations per IP with INCR+EXPIRE, a fixed
// window that is accurate enough for an abuse guard.
func (m *Manager) checkRateLimit(ctx context.Context, ip string) error {
	if m.maxHits <= 0 || strings.TrimSpace(ip) == "" {
		return nil
	}

	key := fmt.Sprintf("%s:rl:%s", m.prefix, ip)
	count, err := m.store.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("captcha rate limit incr: %w", err)
	}

	if count == 1 {
		if err := m.store.Expire(ctx, key, m.rlTTL).Err(); err != nil {
			return fmt.Errorf("captcha rate limit expire: %w", err)
		}
	}

	if count > m.maxHits {
		return ErrRateLimited
	}

	return nil
}
