// Package token issues and validates the self-contained bearer tokens used
// for API authentication. Tokens are HS256 JWS carrying the subject login,
// the role names, and the issue/expiry instants. Validation is pure
// computation: no database or network access.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// Distinct validation failure kinds. All of them surface to clients as the
// same 401; the split exists for operator logs and tests.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenNoRoles   = errors.New("token has no roles claim")
)

const defaultTTL = time.Hour

type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Provider signs and validates bearer tokens with a process-wide secret
// loaded at startup. The secret is immutable after construction.
type Provider struct {
	secret []byte
	ttl    time.Duration
}

// NewProvider builds a Provider. A non-positive ttl falls back to one hour.
func NewProvider(secret string, ttl time.Duration) *Provider {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Provider{secret: []byte(secret), ttl: ttl}
}

// Issue mints a token for the given login and roles and returns it together
// with its expiry instant.
func (p *Provider) Issue(login string, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(p.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := t.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token and returns the principal it carries.
// Failures map to one of the sentinel errors above.
func (p *Provider) Validate(tokenString string) (domain.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Anonymous, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Anonymous, ErrTokenSignature
		default:
			return domain.Anonymous, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return domain.Anonymous, ErrTokenMalformed
	}
	if len(c.Roles) == 0 {
		return domain.Anonymous, ErrTokenNoRoles
	}

	return domain.Principal{Login: c.Subject, Roles: c.Roles}, nil
}
