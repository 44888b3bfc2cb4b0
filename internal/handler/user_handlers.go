package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/handler/dto"
	"github.com/boltayevjahongir/task-manager/internal/middleware"
)

// handleListUsers returns all accounts.
// @Summary List users
// @Description Get every account regardless of role or approval status. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUsersListResponse(users))
}

// handleListPendingUsers returns accounts awaiting approval.
// @Summary List pending users
// @Description Get accounts that signed up and await an approval decision. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/pending [get]
func (h *Handler) handleListPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListPendingUsers(r.Context())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUsersListResponse(users))
}

// handleListDevelopers returns approved developer accounts, usable as task
// assignees.
// @Summary List approved developers
// @Description Get approved developer accounts for assignee selection. Admin only.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UsersListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/developers [get]
func (h *Handler) handleListDevelopers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListApprovedDevelopers(r.Context())
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUsersListResponse(users))
}

// handleApproveUser approves a pending account.
// @Summary Approve a user
// @Description Approve a pending account so it can log in. Admin only; only pending accounts can be approved.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/approve [post]
func (h *Handler) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admin, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	userID, ok := extractPathID(w, r, "user id")
	if !ok {
		return
	}

	user, err := h.userService.ApproveUser(ctx, admin.ID, userID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleRejectUser rejects a pending account.
// @Summary Reject a user
// @Description Reject a pending account. Admin only; only pending accounts can be rejected.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/reject [post]
func (h *Handler) handleRejectUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := extractPathID(w, r, "user id")
	if !ok {
		return
	}

	user, err := h.userService.RejectUser(ctx, userID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleChangeRole changes an account's role.
// @Summary Change a user's role
// @Description Switch an account between the admin and developer roles. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.ChangeRoleRequest true "Role change request"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/role [patch]
func (h *Handler) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := extractPathID(w, r, "user id")
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "role must be 'admin' or 'developer'")
		return
	}

	user, err := h.userService.ChangeRole(ctx, userID, role)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}
