package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boltayevjahongir/task-manager/internal/handler/dto"
	"github.com/boltayevjahongir/task-manager/internal/middleware"
)

// handleSignup registers a new account.
// @Summary Sign up
// @Description Register a new account. Accounts start pending and must be approved by an admin before login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Signup request"
// @Success 201 {object} dto.SignupResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.userService.Signup(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	message := "account created, awaiting approval"
	if user.IsApproved() {
		message = "account created"
	}

	respondJSON(w, http.StatusCreated, dto.SignupResponse{
		Message: message,
		User:    dto.ToUserResponse(user),
	})
}

// handleLogin authenticates a user and issues a token pair.
// @Summary Log in
// @Description Exchange email and password for an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "bearer",
		User:         dto.ToUserResponse(result.User),
	})
}

// handleRefresh rotates a refresh token into a new token pair.
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh request"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.userService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "bearer",
		User:         dto.ToUserResponse(result.User),
	})
}

// handleMe returns the authenticated caller's account.
// @Summary Current user
// @Description Get the account behind the presented access token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}
