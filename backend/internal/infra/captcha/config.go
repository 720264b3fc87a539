package captcha

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envCaptchaEnabled   = "CAPTCHA_ENABLED"
	envCaptchaPrefix    = "CAPTCHA_PREFIX"
	envCaptchaTTL       = "CAPTCHA_TTL"
	envCaptchaWidth     = "CAPTCHA_WIDTH"
	envCaptchaHeight    = "CAPTCHA_HEIGHT"
	envCaptchaLength    = "CAPTCHA_LENGTH"
	envCaptchaMaxSkew   = "CAPTCHA_MAX_SKEW"
	envCaptchaDotCount  = "CAPTCHA_DOT_COUNT"
	envCaptchaRateLimit = "CAPTCHA_RATE_LIMIT_PER_MIN"
	envCaptchaRLWindow  = "CAPTCHA_RATE_LIMIT_WINDOW"
)

// LoadOptionsFromEnv parses the CAPTCHA_* environment variables. The
// boolean return reports whether the feature is enabled at all; when it
// is, a malformed value is a startup error rather than a silent default.
func LoadOptionsFromEnv() (Options, bool, error) {
	rawEnabled := strings.TrimSpace(os.Getenv(envCaptchaEnabled))
	if rawEnabled == "" || !isTruthy(rawEnabled) {
		return Options{}, false, nil
	}

	opts := Options{}

	if prefix := strings.TrimSpace(os.Getenv(envCaptchaPrefix)); prefix != "" {
		opts.Prefix = prefix
	}

	if rawTTL := strings.TrimSpace(os.Getenv(envCaptchaTTL)); rawTTL != "" {
		ttl, err := time.ParseDuration(rawTTL)
		if err != nil {
			return Options{}, false, fmt.Errorf("parse %s: %w", envCaptchaTTL, err)
		}
		opts.TTL = ttl
	}

	intFields := []struct {
		env    string
		target *int
	}{
		{envCaptchaWidth, &opts.Width},
		{envCaptchaHeight, &opts.Height},
		{envCaptchaLength, &opts.Length},
		{envCaptchaDotCount, &opts.DotCount},
		{envCaptchaRateLimit, &opts.RateLimitPerMin},
	}
	for _, field := range intFields {
		if raw := strings.TrimSpace(os.Getenv(field.env)); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				return Options{}, false, fmt.Errorf("parse %s: %w", field.env, err)
			}
			*field.target = value
		}
	}

	if rawSkew := strings.TrimSpace(os.Getenv(envCaptchaMaxSkew)); rawSkew != "" {
		skew, err := strconv.ParseFloat(rawSkew, 64)
		if err != nil {
			return Options{}, false, fmt.Errorf("parse %s: %w", envCaptchaMaxSkew, err)
		}
		opts.MaxSkew = skew
	}

	if rawWindow := strings.TrimSpace(os.Getenv(envCaptchaRLWindow)); rawWindow != "" {
		window, err := time.ParseDuration(rawWindow)
		if err != nil {
			return Options{}, false, fmt.Errorf("parse %s: %w", envCaptchaRLWindow, err)
		}
		opts.RateLimitWindow = window
	}

	return opts, true, nil
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
