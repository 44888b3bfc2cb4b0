package handler

import (
	"net/http"

	"github.com/boltayevjahongir/task-manager/internal/handler/dto"
	"github.com/boltayevjahongir/task-manager/internal/middleware"
)

// handleGetStats returns aggregate task statistics.
// @Summary Get task statistics
// @Description Get task counts by status and priority, the overdue count and a per-developer breakdown. Admin only.
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	stats, err := h.taskService.GetStats(ctx, caller)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(stats))
}
