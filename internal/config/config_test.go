package config

import (
	"strings"
	"testing"
)

func setValid(t *testing.T) {
	t.Setenv("STORAGE_PROVIDER", "s3")
	t.Setenv("S3_REGION", "us-east-1")
	t.Setenv("S3_BUCKET", "scenecast-artifacts")
	t.Setenv("TRANSCRIBE_API_KEY", "sk-test")
	t.Setenv("RENDER_BACKEND", "lambda")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("POLL_CACHE_TTL", "")
}

func TestParseValid(t *testing.T) {
	setValid(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.S3Bucket != "scenecast-artifacts" {
		t.Errorf("expected bucket to be read, got %q", cfg.S3Bucket)
	}
	if cfg.TranscribeModel != "whisper-1" {
		t.Errorf("expected default model whisper-1, got %q", cfg.TranscribeModel)
	}
	if cfg.PollCacheEnabled() {
		t.Error("expected poll cache to be disabled by default")
	}
}

func TestParseReportsEveryMissingKey(t *testing.T) {
	setValid(t)
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("TRANSCRIBE_API_KEY", "")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, key := range []string{"S3_REGION", "S3_BUCKET", "TRANSCRIBE_API_KEY"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected error to name %s, got: %v", key, err)
		}
	}
}

func TestParseStorageProviders(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
	}{
		{
			name: "localfs requires root",
			setup: func(t *testing.T) {
				t.Setenv("STORAGE_PROVIDER", "localfs")
				t.Setenv("STORAGE_LOCAL_ROOT", "")
			},
			wantErr: true,
		},
		{
			name: "localfs with root",
			setup: func(t *testing.T) {
				t.Setenv("STORAGE_PROVIDER", "localfs")
				t.Setenv("STORAGE_LOCAL_ROOT", "/tmp/scenecast")
			},
		},
		{
			name: "gdrive requires credentials",
			setup: func(t *testing.T) {
				t.Setenv("STORAGE_PROVIDER", "gdrive")
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			setup: func(t *testing.T) {
				t.Setenv("STORAGE_PROVIDER", "ftp")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setValid(t)
			tt.setup(t)

			_, err := Parse()
			if tt.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseHTTPBackendRequiresBaseURL(t *testing.T) {
	setValid(t)
	t.Setenv("RENDER_BACKEND", "http")
	t.Setenv("RENDER_BASE_URL", "")

	if _, err := Parse(); err == nil {
		t.Fatal("expected an error for http backend without base URL")
	}

	t.Setenv("RENDER_BASE_URL", "http://localhost:9000")
	if _, err := Parse(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParsePollCache(t *testing.T) {
	setValid(t)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("POLL_CACHE_TTL", "2s")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.PollCacheEnabled() {
		t.Error("expected poll cache to be enabled")
	}

	t.Setenv("POLL_CACHE_TTL", "not-a-duration")
	if _, err := Parse(); err == nil {
		t.Error("expected an error for invalid POLL_CACHE_TTL")
	}
}
