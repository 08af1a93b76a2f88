// Package auth issues and validates the signed session tokens that back the
// paddock_session cookie, and wraps password hashing.
//
// Tokens are stateless HS256 JWTs carrying the user ID and role. Logout is
// implemented with a cache-backed denylist keyed by the token ID, kept until
// the token would have expired anyway.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/paddock-dev/paddock/config"
	"github.com/paddock-dev/paddock/pkg/cache"
)

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 24 * time.Hour

// ErrTokenRevoked is returned for tokens invalidated by logout.
var ErrTokenRevoked = errors.New("auth: token revoked")

// Claims holds the typed session token payload.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.SessionSecret())
}

func denylistKey(tokenID string) string { return "paddock:revoked:" + tokenID }

// GenerateToken creates a signed session token for the given user.
func GenerateToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a session token, rejecting revoked ones.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.ID != "" && cache.Has(denylistKey(claims.ID)) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// RevokeToken invalidates a session token until its natural expiry.
func RevokeToken(claims *Claims) error {
	ttl := SessionTTL
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return cache.Set(denylistKey(claims.ID), true, ttl)
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
