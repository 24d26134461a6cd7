package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a session token failed verification:
// bad signature, malformed structure, wrong algorithm, or expiry.
// The auth gate treats every variant the same way ("log in again").
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the payload embedded in a session token. The token
// itself is the only record of an active session; claims are trusted
// only after signature verification.
type SessionClaims struct {
	Email  string `json:"email"`
	UserID string `json:"userid"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with an HMAC-SHA256 secret.
// The secret is injected at construction and never read from the
// environment inside business logic.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a token codec. A zero ttl disables expiry; any other
// ttl is added to the issue time, so a negative ttl yields tokens that
// are already expired.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs the identity claims into an opaque token string safe to
// store in a cookie.
func (c *Codec) Issue(email, userID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify decodes a token and returns its claims. Any tampering,
// malformed input, unexpected signing method, or expiry yields
// ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
