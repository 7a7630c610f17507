package app

import (
	"errors"

	"jobdeck/cmd/security/token"
)

// ValidateSecurityConfig enforces startup security policy.
//
// Fail-fast is intentional: a server that signs session tokens with a missing
// or weak secret must refuse to boot rather than degrade silently.
func ValidateSecurityConfig() error {
	if _, err := token.SecretFromEnv(token.MinSecretBytes); err != nil {
		switch {
		case errors.Is(err, token.ErrSecretMissing):
			return errors.New("security policy: " + token.SecretEnvKey + " is not set")
		case errors.Is(err, token.ErrSecretTooShort):
			return errors.New("security policy: " + token.SecretEnvKey + " is too short (min 32 bytes)")
		default:
			return err
		}
	}
	return nil
}
