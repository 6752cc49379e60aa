package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is used when Issue is called with a zero ttl.
const DefaultTTL = 15 * time.Minute

// Claims is the JWT payload. The subject claim carries the username; the
// expiry claim is always set at issuance.
type Claims struct {
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a process-wide secret.
// The secret is set once at construction and never mutated.
type Provider struct {
	secret []byte
}

func NewProvider(secret string) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Provider{secret: []byte(secret)}, nil
}

// Issue signs a token for the given subject. A zero ttl falls back to
// DefaultTTL; a negative ttl produces an already-expired token.
func (p *Provider) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Decode verifies the signature, algorithm and expiry of tokenStr and
// returns its claims. Every failure mode, including an empty token, maps
// to domain.ErrInvalidToken so callers cannot distinguish a missing token
// from a malformed one.
func (p *Provider) Decode(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, domain.ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
