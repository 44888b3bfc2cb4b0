package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/handler/dto"
	"github.com/boltayevjahongir/task-manager/internal/middleware"
)

// handleListComments returns the comments of a task, oldest first.
// @Summary List task comments
// @Description Get all comments on a task the caller is allowed to see
// @Tags comments
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.CommentsListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/comments [get]
func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	// Comment visibility follows task visibility
	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}
	if err := h.authorizer.CanView(caller, task); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	comments, err := h.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list comments")
		return
	}

	authorIDs := make([]string, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}
	briefs, err := h.userRepo.GetBriefsByIDs(ctx, authorIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list comments")
		return
	}

	items := make([]dto.CommentResponse, len(comments))
	for i, comment := range comments {
		var author *domain.UserBrief
		if brief, ok := briefs[comment.AuthorID]; ok {
			author = &brief
		}
		items[i] = dto.ToCommentResponse(comment, author)
	}

	respondJSON(w, http.StatusOK, dto.CommentsListResponse{
		Items: items,
		Total: len(items),
	})
}

// handleCreateComment adds a comment to a task.
// @Summary Add a comment
// @Description Add a comment to a task the caller is allowed to see
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateCommentRequest true "Comment request"
// @Success 201 {object} dto.CommentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/comments [post]
func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractPathID(w, r, "task id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		status, code, message := dto.MapDomainError(domain.ErrEmptyComment)
		respondError(w, status, code, message)
		return
	}

	task, err := h.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}
	if err := h.authorizer.CanView(caller, task); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	comment, err := h.commentRepo.Create(ctx, &domain.Comment{
		TaskID:   taskID,
		AuthorID: caller.ID,
		Text:     req.Text,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create comment")
		return
	}

	author := &domain.UserBrief{ID: caller.ID, FullName: caller.FullName, Email: caller.Email}
	respondJSON(w, http.StatusCreated, dto.ToCommentResponse(comment, author))
}

// handleDeleteComment removes a comment. Authors may delete their own
// comments; admins may delete any.
// @Summary Delete a comment
// @Description Delete a comment. Only the author or an admin may delete it.
// @Tags comments
// @Param id path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	commentID, ok := extractPathID(w, r, "comment id")
	if !ok {
		return
	}

	comment, err := h.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	if comment.AuthorID != caller.ID && !caller.IsAdmin() {
		status, code, message := dto.MapDomainError(domain.ErrAccessDenied)
		respondError(w, status, code, message)
		return
	}

	if err := h.commentRepo.Delete(ctx, commentID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
