// Package config loads the runtime configuration from the environment. It is
// validated once per process; absence of required settings is surfaced as a
// hard error to every dependent endpoint, never papered over with defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Config is the validated process-wide runtime configuration.
type Config struct {
	HTTPPort string

	// Storage selects the transient-artifact store: s3, localfs or gdrive.
	StorageProvider    string
	S3Region           string
	S3Bucket           string
	LocalRoot          string
	GDriveClientID     string
	GDriveClientSecret string
	GDriveRefreshToken string
	GDriveFolderID     string

	// Transcription service credentials.
	TranscribeAPIKey  string
	TranscribeBaseURL string
	TranscribeModel   string

	// RenderBackend selects the render dispatch adapter: lambda or http.
	RenderBackend string
	RenderBaseURL string
	AWSRegion     string

	// Optional poll-side progress cache. Disabled unless RedisAddr is set.
	RedisAddr    string
	PollCacheTTL time.Duration
}

var (
	once      sync.Once
	cached    *Config
	cachedErr error
)

// Load parses and validates the configuration exactly once and caches the
// result for the process lifetime.
func Load() (*Config, error) {
	once.Do(func() {
		cached, cachedErr = Parse()
	})
	return cached, cachedErr
}

// Parse reads the environment fresh. Used by Load and by tests.
func Parse() (*Config, error) {
	cfg := &Config{
		HTTPPort: env("HTTP_PORT", "8080"),

		StorageProvider:    env("STORAGE_PROVIDER", "s3"),
		S3Region:           strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Bucket:           strings.TrimSpace(os.Getenv("S3_BUCKET")),
		LocalRoot:          strings.TrimSpace(os.Getenv("STORAGE_LOCAL_ROOT")),
		GDriveClientID:     strings.TrimSpace(os.Getenv("GDRIVE_CLIENT_ID")),
		GDriveClientSecret: strings.TrimSpace(os.Getenv("GDRIVE_CLIENT_SECRET")),
		GDriveRefreshToken: strings.TrimSpace(os.Getenv("GDRIVE_REFRESH_TOKEN")),
		GDriveFolderID:     strings.TrimSpace(os.Getenv("GDRIVE_FOLDER_ID")),

		TranscribeAPIKey:  strings.TrimSpace(os.Getenv("TRANSCRIBE_API_KEY")),
		TranscribeBaseURL: strings.TrimSpace(os.Getenv("TRANSCRIBE_BASE_URL")),
		TranscribeModel:   env("TRANSCRIBE_MODEL", "whisper-1"),

		RenderBackend: env("RENDER_BACKEND", "lambda"),
		RenderBaseURL: strings.TrimSpace(os.Getenv("RENDER_BASE_URL")),
		AWSRegion:     strings.TrimSpace(os.Getenv("AWS_REGION")),

		RedisAddr: strings.TrimSpace(os.Getenv("REDIS_ADDR")),
	}

	if ttl := strings.TrimSpace(os.Getenv("POLL_CACHE_TTL")); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("config: invalid POLL_CACHE_TTL %q: %w", ttl, err)
		}
		cfg.PollCacheTTL = d
	}

	var missing []string

	switch cfg.StorageProvider {
	case "s3":
		if cfg.S3Region == "" {
			missing = append(missing, "S3_REGION")
		}
		if cfg.S3Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	case "localfs":
		if cfg.LocalRoot == "" {
			missing = append(missing, "STORAGE_LOCAL_ROOT")
		}
	case "gdrive":
		if cfg.GDriveClientID == "" {
			missing = append(missing, "GDRIVE_CLIENT_ID")
		}
		if cfg.GDriveClientSecret == "" {
			missing = append(missing, "GDRIVE_CLIENT_SECRET")
		}
		if cfg.GDriveRefreshToken == "" {
			missing = append(missing, "GDRIVE_REFRESH_TOKEN")
		}
	default:
		return nil, fmt.Errorf("config: unknown storage provider %q", cfg.StorageProvider)
	}

	switch cfg.RenderBackend {
	case "lambda":
		// AWS_REGION may come from the ambient AWS config chain, so it is
		// not required here.
	case "http":
		if cfg.RenderBaseURL == "" {
			missing = append(missing, "RENDER_BASE_URL")
		}
	default:
		return nil, fmt.Errorf("config: unknown render backend %q", cfg.RenderBackend)
	}

	if cfg.TranscribeAPIKey == "" {
		missing = append(missing, "TRANSCRIBE_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("config: missing required environment: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// PollCacheEnabled reports whether the optional progress cache is configured.
func (c *Config) PollCacheEnabled() bool {
	return c.RedisAddr != "" && c.PollCacheTTL > 0
}

func env(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
