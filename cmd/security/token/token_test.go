package token

import (
	"errors"
	"os"
	"testing"
)

func TestSecretFromEnv_Missing(t *testing.T) {
	_ = os.Unsetenv(SecretEnvKey)

	_, err := SecretFromEnv(MinSecretBytes)
	if !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
	if SecretConfigured() {
		t.Fatalf("expected SecretConfigured false")
	}
}

func TestSecretFromEnv_TooShort(t *testing.T) {
	t.Setenv(SecretEnvKey, "short")

	_, err := SecretFromEnv(MinSecretBytes)
	if !errors.Is(err, ErrSecretTooShort) {
		t.Fatalf("expected ErrSecretTooShort, got %v", err)
	}
}

func TestSecretFromEnv_OK(t *testing.T) {
	t.Setenv(SecretEnvKey, "  0123456789abcdef0123456789abcdef  ")

	got, err := SecretFromEnv(MinSecretBytes)
	if err != nil {
		t.Fatalf("SecretFromEnv error: %v", err)
	}
	if string(got) != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("secret not trimmed: %q", got)
	}
	if !SecretConfigured() {
		t.Fatalf("expected SecretConfigured true")
	}
}
