package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/handler/dto"
	"github.com/boltayevjahongir/task-manager/internal/middleware"
	"github.com/boltayevjahongir/task-manager/internal/service"
)

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a new task in the NEW status. Admin only. Priority defaults to medium.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.AssigneeID != nil {
		if _, err := uuid.Parse(*req.AssigneeID); err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "assignee_id must be a valid UUID")
			return
		}
	}

	view, err := h.taskService.CreateTask(ctx, caller, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		Deadline:    req.Deadline,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(*view))
}

// handleGetTask retrieves a single task.
// @Summary Get task details
// @Description Get one task. Developers only see tasks assigned to them; a task outside the caller's scope yields 403, not 404.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.taskService.GetTask(ctx, caller, taskID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(*view))
}

// handleUpdateTask applies a partial update to a task.
// @Summary Update a task
// @Description Partially update task fields. Admin only. Omitted fields stay untouched; explicit null clears description, assignee or deadline. Status is not updatable here.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task update request"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *Handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
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

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	var params service.UpdateTaskParams

	if req.Title.Set {
		if !req.Title.Valid {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title cannot be null")
			return
		}
		params.Title = &req.Title.Value
	}
	if req.Description.Set {
		if req.Description.Valid {
			params.Description = &req.Description.Value
		} else {
			params.ClearDescription = true
		}
	}
	if req.Priority.Set {
		if !req.Priority.Valid {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "priority cannot be null")
			return
		}
		priority := domain.TaskPriority(req.Priority.Value)
		params.Priority = &priority
	}
	if req.AssigneeID.Set {
		if req.AssigneeID.Valid {
			if _, err := uuid.Parse(req.AssigneeID.Value); err != nil {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "assignee_id must be a valid UUID")
				return
			}
			params.AssigneeID = &req.AssigneeID.Value
		} else {
			params.ClearAssignee = true
		}
	}
	if req.Deadline.Set {
		if req.Deadline.Valid {
			params.Deadline = &req.Deadline.Value
		} else {
			params.ClearDeadline = true
		}
	}

	view, err := h.taskService.UpdateTask(ctx, caller, taskID, params)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(*view))
}

// handleTransitionStatus changes task status.
// @Summary Transition task status
// @Description Move a task along the lifecycle. Admins may apply any transition; developers are restricted to the fixed table and only on their own tasks. A concurrent write yields 409.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.TransitionStatusRequest true "Status transition request"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *Handler) handleTransitionStatus(w http.ResponseWriter, r *http.Request) {
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

	var req dto.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Status == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "status is required")
		return
	}

	view, err := h.taskService.TransitionStatus(ctx, caller, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(*view))
}

// handleDeleteTask deletes a task and its comments.
// @Summary Delete a task
// @Description Delete a task. Admin only. Comments are removed with it.
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *Handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
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

	if err := h.taskService.DeleteTask(ctx, caller, taskID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListTasks returns one page of tasks visible to the caller.
// @Summary List tasks
// @Description Get a filtered, sorted page of tasks. Developers only see tasks assigned to them; filters narrow within that scope.
// @Tags tasks
// @Produce json
// @Param status query string false "Filter by status: new, in_progress, review, done"
// @Param priority query string false "Filter by priority: low, medium, high, urgent"
// @Param assignee_id query string false "Filter by assignee UUID"
// @Param search query string false "Case-insensitive substring match on title and description"
// @Param sort_by query string false "Sort field: created_at, deadline, priority, status (default created_at)"
// @Param order query string false "Sort order: asc or desc (default desc)"
// @Param page query int false "Page number, 1-based (default 1)"
// @Param per_page query int false "Page size, 1-100 (default 20)"
// @Success 200 {object} dto.TasksListResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()

	params := service.ListTasksParams{
		Status:     query.Get("status"),
		Priority:   query.Get("priority"),
		AssigneeID: query.Get("assignee_id"),
		Search:     query.Get("search"),
		SortBy:     query.Get("sort_by"),
		Order:      query.Get("order"),
		Page:       1,
		PerPage:    20,
	}

	if pageParam := query.Get("page"); pageParam != "" {
		n, err := strconv.Atoi(pageParam)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "page must be an integer")
			return
		}
		params.Page = n
	}
	if perPageParam := query.Get("per_page"); perPageParam != "" {
		n, err := strconv.Atoi(perPageParam)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "per_page must be an integer")
			return
		}
		params.PerPage = n
	}

	page, err := h.taskService.ListTasks(ctx, caller, params)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTasksListResponse(page))
}

// handleOverdueTasks returns tasks past their deadline and not done.
// @Summary List overdue tasks
// @Description Get all tasks whose deadline has passed and are not done, ordered by deadline. Admin only.
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.OverdueTasksResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/overdue [get]
func (h *Handler) handleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := middleware.GetUserFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	views, err := h.taskService.OverdueTasks(ctx, caller)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	items := dto.ToTaskResponses(views)
	respondJSON(w, http.StatusOK, dto.OverdueTasksResponse{
		Items: items,
		Total: len(items),
	})
}
