package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies signed, time-limited session tokens.
type TokenManager interface {
	Issue(id Identity, now time.Time) (token string, exp time.Time, err error)
	Verify(token string, now time.Time) (Identity, error)
}

// sessionClaims is the wire shape of a session token payload.
// The subject carries the user id; profile claims ride alongside so protected
// handlers never need a store round-trip to learn who is calling.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type jwtHS256Manager struct {
	issuer string
	ttl    time.Duration
	secret []byte
}

// NewJWTHS256Manager builds a TokenManager backed by HMAC-SHA256 JWTs.
//
// The secret is injected once at construction and never read from ambient
// state afterwards, so tests can run with fake secrets.
func NewJWTHS256Manager(cfg Config) (TokenManager, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrConfig
	}
	if cfg.TokenTTL <= 0 {
		return nil, ErrConfig
	}

	return &jwtHS256Manager{
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		secret: cfg.Secret,
	}, nil
}

func (m *jwtHS256Manager) Issue(id Identity, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(id.UserID) == "" {
		return "", time.Time{}, ErrConfig
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	exp := now.Add(m.ttl)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: id.Email,
		Name:  id.DisplayName,
		Phone: id.ContactNumber,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (m *jwtHS256Manager) Verify(tokenString string, now time.Time) (Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Identity{}, ErrTokenMissing
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	claims := &sessionClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})

	// Signature failures surface before claim validation in golang-jwt, so a
	// tampered-and-expired token reports invalid, not expired.
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return Identity{}, ErrTokenInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrTokenExpired
	default:
		return Identity{}, ErrTokenInvalid
	}

	if tok == nil || !tok.Valid {
		return Identity{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, ErrTokenInvalid
	}

	id := Identity{
		UserID:        claims.Subject,
		Email:         claims.Email,
		DisplayName:   claims.Name,
		ContactNumber: claims.Phone,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}

	return id, nil
}
