package session

import (
	"errors"
	"os"
	"testing"
	"time"

	"jobdeck/cmd/security/token"
)

func TestLoadConfigFromEnv_MissingSecret(t *testing.T) {
	_ = os.Unsetenv(token.SecretEnvKey)

	if _, err := LoadConfigFromEnv(); !errors.Is(err, token.ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv(token.SecretEnvKey, "0123456789abcdef0123456789abcdef")
	_ = os.Unsetenv("JOBDECK_AUTH_ISSUER")
	_ = os.Unsetenv("JOBDECK_AUTH_TOKEN_TTL")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.Issuer != "jobdeck" {
		t.Fatalf("issuer = %q, want jobdeck", cfg.Issuer)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("ttl = %v, want 24h", cfg.TokenTTL)
	}
	if len(cfg.Secret) == 0 {
		t.Fatalf("expected secret bytes")
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv(token.SecretEnvKey, "0123456789abcdef0123456789abcdef")
	t.Setenv("JOBDECK_AUTH_ISSUER", "jobdeck-test")
	t.Setenv("JOBDECK_AUTH_TOKEN_TTL", "30m")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.Issuer != "jobdeck-test" {
		t.Fatalf("issuer = %q", cfg.Issuer)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("ttl = %v, want 30m", cfg.TokenTTL)
	}
}

func TestLoadConfigFromEnv_BadTTL(t *testing.T) {
	t.Setenv(token.SecretEnvKey, "0123456789abcdef0123456789abcdef")
	t.Setenv("JOBDECK_AUTH_TOKEN_TTL", "-5m")

	if _, err := LoadConfigFromEnv(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestNewJWTHS256Manager_ConfigValidation(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewJWTHS256Manager(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for empty secret, got %v", err)
	}

	cfg.Secret = []byte("0123456789abcdef0123456789abcdef")
	cfg.TokenTTL = 0
	if _, err := NewJWTHS256Manager(cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for zero TTL, got %v", err)
	}
}
