// Package token signs and verifies the compact credential carried in the
// x-auth-token header. It is stateless: a pure function of the secret key.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned when a credential fails signature or expiry checks.
var ErrInvalidToken = errors.New("token is not valid")

// userClaim carries the identity id inside the token payload.
type userClaim struct {
	ID string `json:"id"`
}

// claims is the full JWT payload: `{"user": {"id": ...}}` plus registered claims.
type claims struct {
	User userClaim `json:"user"`
	jwt.RegisteredClaims
}

// Codec issues and verifies signed credentials for a fixed secret and TTL.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec signing with the given secret; tokens expire after ttl.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed credential embedding the given identity id.
func (c *Codec) Issue(userID string) (string, error) {
	if len(c.secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}

	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User: userClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	return t.SignedString(c.secret)
}

// Verify checks the credential's signature and expiry and returns the
// embedded identity id. Any failure maps to ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || cl.User.ID == "" {
		return "", ErrInvalidToken
	}
	return cl.User.ID, nil
}
