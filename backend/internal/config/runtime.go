package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"packsite/backend/internal/i18n"
)

const (
	envPort          = "PORT"
	envSessionSecret = "SESSION_SECRET"
	envSessionTTL    = "SESSION_TTL"
	envDefaultLocale = "DEFAULT_LOCALE"
	envUploadRoot    = "UPLOAD_ROOT"
	envCORSOrigins   = "CORS_ORIGINS"
)

const (
	defaultPort       = "8080"
	defaultSessionTTL = 12 * time.Hour
	defaultUploadRoot = "public/uploads"
)

// Runtime aggregates the process-level knobs that are not tied to a
// single infra client: HTTP port, admin session parameters, the default
// render locale and the upload directory.
type Runtime struct {
	Port          string
	SessionSecret string
	SessionTTL    time.Duration
	DefaultLocale i18n.Locale
	UploadRoot    string
	CORSOrigins   []string
}

// LoadRuntime reads the runtime configuration from the environment.
// SESSION_SECRET is the only hard requirement: an admin API signed with
// a known default would be worse than refusing to start.
func LoadRuntime() (Runtime, error) {
	LoadEnvFiles()

	rt := Runtime{
		Port:          defaultPort,
		SessionTTL:    defaultSessionTTL,
		DefaultLocale: i18n.Primary,
		UploadRoot:    defaultUploadRoot,
	}

	if port := strings.TrimSpace(os.Getenv(envPort)); port != "" {
		rt.Port = port
	}

	secret := strings.TrimSpace(os.Getenv(envSessionSecret))
	if secret == "" {
		return Runtime{}, fmt.Errorf("%s is required", envSessionSecret)
	}
	rt.SessionSecret = secret

	if raw := strings.TrimSpace(os.Getenv(envSessionTTL)); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Runtime{}, fmt.Errorf("parse %s: %w", envSessionTTL, err)
		}
		if ttl <= 0 {
			return Runtime{}, fmt.Errorf("%s must be positive", envSessionTTL)
		}
		rt.SessionTTL = ttl
	}

	if raw := strings.TrimSpace(os.Getenv(envDefaultLocale)); raw != "" {
		rt.DefaultLocale = i18n.Normalize(raw)
	}

	if root := strings.TrimSpace(os.Getenv(envUploadRoot)); root != "" {
		rt.UploadRoot = root
	}

	// Comma-separated allow list for the marketing site's origins.
	// Localhost is always allowed for development regardless.
	if raw := strings.TrimSpace(os.Getenv(envCORSOrigins)); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				rt.CORSOrigins = append(rt.CORSOrigins, trimmed)
			}
		}
	}

	return rt, nil
}
