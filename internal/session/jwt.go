// Package session issues and validates the signed tokens that scope a diner's
// cart to one restaurant table.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session token")
	ErrMissingToken = errors.New("session token required")
)

// Session identifies a cart: who it belongs to (the table) and which tenant.
type Session struct {
	ID         string
	Restaurant string
	Table      string

	// ExpiresAt is when the token carrying the session stops being accepted.
	ExpiresAt time.Time
}

// Manager handles session token generation and validation.
type Manager struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// Claims represents the custom JWT claims for a cart session.
type Claims struct {
	SessionID  string `json:"sid"`
	Restaurant string `json:"restaurant"`
	Table      string `json:"table"`
	jwt.RegisteredClaims
}

// NewManager creates a new session manager with the given secret and token duration.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewManager(secretKey string, tokenDuration time.Duration) *Manager {
	return &Manager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Generate creates a signed token for s and returns it with its expiry.
func (m *Manager) Generate(s Session) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.tokenDuration)
	claims := &Claims{
		SessionID:  s.ID,
		Restaurant: s.Restaurant,
		Table:      s.Table,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and validates a token, returning the session it carries.
func (m *Manager) Validate(tokenString string) (Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" || claims.Restaurant == "" {
		return Session{}, ErrInvalidToken
	}

	s := Session{
		ID:         claims.SessionID,
		Restaurant: claims.Restaurant,
		Table:      claims.Table,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
