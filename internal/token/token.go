// Package token issues and verifies the JWT access/refresh token pair used
// to identify callers. The signing secret and lifetimes are injected from
// configuration; nothing here reads ambient state.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Claims carries the caller identity inside a signed token. Role is only
// informational; authorization always re-reads the user record.
type Claims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with an HMAC secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager creates a Manager with the given secret and token lifetimes.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair issues a fresh access and refresh token for the user.
func (m *Manager) IssuePair(user *domain.User) (access string, refresh string, err error) {
	access, err = m.issue(user, typeAccess, m.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("issue access token: %w", err)
	}
	refresh, err = m.issue(user, typeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh token: %w", err)
	}
	return access, refresh, nil
}

func (m *Manager) issue(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if tokenType == typeAccess {
		claims.Role = string(user.Role)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(raw, wantType string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, fmt.Errorf("%w: expected %s token", domain.ErrInvalidToken, wantType)
	}
	if claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// ParseAccess verifies an access token and returns its claims.
func (m *Manager) ParseAccess(raw string) (*Claims, error) {
	return m.parse(raw, typeAccess)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (m *Manager) ParseRefresh(raw string) (*Claims, error) {
	return m.parse(raw, typeRefresh)
}
