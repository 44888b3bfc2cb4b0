package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/repository"
	"github.com/boltayevjahongir/task-manager/internal/token"
)

// UserService handles registration, authentication and account management.
type UserService struct {
	userRepo          *repository.UserRepository
	tokens            *token.Manager
	initialAdminEmail string
}

// NewUserService creates a new UserService. initialAdminEmail, when
// non-empty, names the one signup that becomes an approved admin instead of
// a pending developer.
func NewUserService(userRepo *repository.UserRepository, tokens *token.Manager, initialAdminEmail string) *UserService {
	return &UserService{
		userRepo:          userRepo,
		tokens:            tokens,
		initialAdminEmail: initialAdminEmail,
	}
}

// AuthResult is a user together with a freshly issued token pair.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Signup registers a new account. Everyone starts as a pending developer
// except the configured initial admin, who is approved immediately.
func (s *UserService) Signup(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, domain.ErrEmptyFullName
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrEmptyEmail
	}
	if password == "" {
		return nil, domain.ErrEmptyPassword
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := domain.UserRoleDeveloper
	status := domain.UserStatusPending
	if s.initialAdminEmail != "" && strings.EqualFold(email, s.initialAdminEmail) {
		role = domain.UserRoleAdmin
		status = domain.UserStatusApproved
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		FullName:       fullName,
		Email:          email,
		HashedPassword: string(hashed),
		Role:           role,
		Status:         status,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user signed up", "user_id", user.ID, "role", user.Role, "status", user.Status)

	return user, nil
}

// Login verifies credentials and issues a token pair. Pending and rejected
// accounts are told their status instead of receiving tokens.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	switch user.Status {
	case domain.UserStatusPending:
		return nil, domain.ErrAccountPending
	case domain.UserStatusRejected:
		return nil, domain.ErrAccountRejected
	}

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates the token pair from a valid refresh token. The user must
// still exist and be approved.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsApproved() {
		return nil, domain.ErrInvalidToken
	}

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// ListPendingUsers returns users awaiting approval.
func (s *UserService) ListPendingUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListPending(ctx)
}

// ListApprovedDevelopers returns approved developers for assignment pickers.
func (s *UserService) ListApprovedDevelopers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListApprovedDevelopers(ctx)
}

// ApproveUser approves a pending account and records the acting admin.
func (s *UserService) ApproveUser(ctx context.Context, adminID, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserStatusPending {
		return nil, domain.ErrUserNotPending
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, domain.UserStatusApproved, &adminID); err != nil {
		return nil, err
	}

	slog.Info("user approved", "user_id", userID, "admin_id", adminID)

	return s.userRepo.GetByID(ctx, userID)
}

// RejectUser rejects a pending account.
func (s *UserService) RejectUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserStatusPending {
		return nil, domain.ErrUserNotPending
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, domain.UserStatusRejected, nil); err != nil {
		return nil, err
	}

	slog.Info("user rejected", "user_id", userID)

	return s.userRepo.GetByID(ctx, userID)
}

// ChangeRole switches a user between admin and developer.
func (s *UserService) ChangeRole(ctx context.Context, userID string, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	slog.Info("user role changed", "user_id", userID, "role", role)

	return s.userRepo.GetByID(ctx, userID)
}
