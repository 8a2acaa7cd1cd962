package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for a token that fails signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid token")

const tokenIssuer = "circlemud"

// Claims identify an administrator calling the admin API.
type Claims struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 admin tokens.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenIssuer returns an issuer using secret as the HMAC key.
//
// Precondition: secret must be non-empty; ttl must be positive.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for name at level.
func (ti *TokenIssuer) Issue(name string, level int) (string, error) {
	now := ti.now()
	claims := Claims{
		Name:  name,
		Level: level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenStr and returns its claims.
//
// Postcondition: Returns claims or an error wrapping ErrInvalidToken.
func (ti *TokenIssuer) Validate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.key, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(ti.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
