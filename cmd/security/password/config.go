package password

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptParams controls bcrypt hashing cost.
// Cost is the log2 work factor; each increment doubles the hashing time.
type BcryptParams struct {
	Cost int
}

// Policy controls password validation boundaries.
type Policy struct {
	MinLength int
	MaxLength int
}

// Config is the single configuration surface for this package.
type Config struct {
	Params BcryptParams
	Policy Policy
}

// DefaultConfig returns the baseline configuration for interactive logins.
// Values can be overridden via env.
func DefaultConfig() Config {
	return Config{
		Params: BcryptParams{
			Cost: 10,
		},
		Policy: Policy{
			MinLength: 6,
			// bcrypt only consumes the first 72 bytes of input; longer
			// passwords would silently verify against truncated prefixes.
			MaxLength: 72,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - JOBDECK_PASSWORD_MIN_LEN
// - JOBDECK_PASSWORD_MAX_LEN
// - JOBDECK_BCRYPT_COST
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("JOBDECK_PASSWORD_MIN_LEN"); ok {
		n, err := atoiBounded(v, 1, 1024)
		if err != nil {
			return Config{}, fmt.Errorf("JOBDECK_PASSWORD_MIN_LEN: %w", err)
		}
		cfg.Policy.MinLength = n
	}

	if v, ok := os.LookupEnv("JOBDECK_PASSWORD_MAX_LEN"); ok {
		n, err := atoiBounded(v, 1, 72)
		if err != nil {
			return Config{}, fmt.Errorf("JOBDECK_PASSWORD_MAX_LEN: %w", err)
		}
		cfg.Policy.MaxLength = n
	}

	if v, ok := os.LookupEnv("JOBDECK_BCRYPT_COST"); ok {
		n, err := atoiBounded(v, bcrypt.MinCost, bcrypt.MaxCost)
		if err != nil {
			return Config{}, fmt.Errorf("JOBDECK_BCRYPT_COST: %w", err)
		}
		cfg.Params.Cost = n
	}

	// Final sanity.
	if cfg.Policy.MinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf(
			"password policy invalid: min_len(%d) > max_len(%d)",
			cfg.Policy.MinLength,
			cfg.Policy.MaxLength,
		)
	}

	return cfg, nil
}

func atoiBounded(s string, minVal, maxVal int) (int, error) {
	s = strings.TrimSpace(s)
	i64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}

	i := int(i64)
	if i < minVal || i > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return i, nil
}
