package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/repository"
	"github.com/boltayevjahongir/task-manager/internal/token"
)

type contextKey string

const (
	// ContextKeyUser is the key for storing the caller in request context.
	ContextKeyUser contextKey = "user"
)

// AuthMiddleware handles Bearer token authentication and role gating.
type AuthMiddleware struct {
	userRepo *repository.UserRepository
	tokens   *token.Manager
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(userRepo *repository.UserRepository, tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Authenticate validates the Bearer access token and adds the caller to the
// request context. The user record is re-read on every request so role and
// approval changes take effect immediately.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.ParseAccess(parts[1])
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireApproved rejects callers whose account has not been approved.
// Must run after Authenticate.
func (m *AuthMiddleware) RequireApproved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r.Context())
		if err != nil || !user.IsApproved() {
			http.Error(w, "account is not approved", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the admin role. Must run after
// Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r.Context())
		if err != nil || !user.IsAdmin() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves the authenticated caller from request context.
func GetUserFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
