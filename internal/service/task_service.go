package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/repository"
)

// TaskService coordinates task operations: lifecycle mutations gated by the
// Authorizer and the scoped, filtered, paginated query surface.
type TaskService struct {
	taskRepo   *repository.TaskRepository
	userRepo   *repository.UserRepository
	authorizer *Authorizer
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo *repository.TaskRepository, userRepo *repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		authorizer: NewAuthorizer(),
	}
}

// TaskView is a task together with resolved assignee/creator identity.
type TaskView struct {
	Task     *domain.Task
	Assignee *domain.UserBrief
	Creator  *domain.UserBrief
}

// CreateTaskParams holds the fields for task creation.
type CreateTaskParams struct {
	Title       string
	Description *string
	Priority    domain.TaskPriority
	AssigneeID  *string
	Deadline    *time.Time
}

// UpdateTaskParams mirrors repository.UpdateTaskParams at the service level.
type UpdateTaskParams = repository.UpdateTaskParams

// ListTasksParams holds the raw filter, sort and pagination inputs for
// listing tasks. Status and Priority are validated here; SortBy and Order
// fall back silently.
type ListTasksParams struct {
	Status     string
	Priority   string
	AssigneeID string
	Search     string
	SortBy     string
	Order      string
	Page       int
	PerPage    int
}

// TaskPage is one page of a scoped, filtered task listing.
type TaskPage struct {
	Items   []TaskView
	Total   int
	Page    int
	PerPage int
	Pages   int
}

// checkAssignee verifies that an assignee reference points at an existing,
// approved user.
func (s *TaskService) checkAssignee(ctx context.Context, assigneeID string) error {
	assignee, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if !assignee.IsApproved() {
		return fmt.Errorf("%w: user %s", domain.ErrAssigneeNotApproved, assigneeID)
	}
	return nil
}

// toViews resolves assignee and creator briefs for a batch of tasks. A
// dangling assignee reference resolves to no assignee.
func (s *TaskService) toViews(ctx context.Context, tasks []*domain.Task) ([]TaskView, error) {
	ids := make([]string, 0, len(tasks)*2)
	seen := make(map[string]bool)
	for _, task := range tasks {
		if !seen[task.CreatorID] {
			seen[task.CreatorID] = true
			ids = append(ids, task.CreatorID)
		}
		if task.AssigneeID != nil && !seen[*task.AssigneeID] {
			seen[*task.AssigneeID] = true
			ids = append(ids, *task.AssigneeID)
		}
	}

	briefs, err := s.userRepo.GetBriefsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve user briefs: %w", err)
	}

	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		view := TaskView{Task: task}
		if brief, ok := briefs[task.CreatorID]; ok {
			view.Creator = &brief
		}
		if task.AssigneeID != nil {
			if brief, ok := briefs[*task.AssigneeID]; ok {
				view.Assignee = &brief
			}
		}
		views[i] = view
	}
	return views, nil
}

func (s *TaskService) toView(ctx context.Context, task *domain.Task) (*TaskView, error) {
	views, err := s.toViews(ctx, []*domain.Task{task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateTask creates a new task. Admin only; status always starts at new.
func (s *TaskService) CreateTask(ctx context.Context, caller *domain.User, params CreateTaskParams) (*TaskView, error) {
	if err := s.authorizer.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if err := ValidateTitle(params.Title); err != nil {
		return nil, err
	}

	priority := params.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	if params.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *params.AssigneeID); err != nil {
			return nil, err
		}
	}

	task, err := s.taskRepo.Create(ctx, &domain.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      domain.TaskStatusNew,
		Priority:    priority,
		AssigneeID:  params.AssigneeID,
		CreatorID:   caller.ID,
		Deadline:    params.Deadline,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"creator_id", caller.ID,
		"priority", task.Priority,
	)

	return s.toView(ctx, task)
}

// GetTask retrieves a single task the caller is allowed to see. A task
// outside the caller's scope yields ErrAccessDenied, not ErrTaskNotFound.
func (s *TaskService) GetTask(ctx context.Context, caller *domain.User, taskID string) (*TaskView, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.CanView(caller, task); err != nil {
		return nil, err
	}
	return s.toView(ctx, task)
}

// UpdateTask applies a partial update to task fields. Admin only; status is
// never touched here, it goes through TransitionStatus.
func (s *TaskService) UpdateTask(ctx context.Context, caller *domain.User, taskID string, params UpdateTaskParams) (*TaskView, error) {
	if err := s.authorizer.RequireAdmin(caller); err != nil {
		return nil, err
	}

	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	if params.Title != nil {
		if err := ValidateTitle(*params.Title); err != nil {
			return nil, err
		}
	}
	if params.Priority != nil && !params.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}
	if params.AssigneeID != nil && !params.ClearAssignee {
		if err := s.checkAssignee(ctx, *params.AssigneeID); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(ctx, taskID, params); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	slog.Info("task updated", "task_id", taskID, "actor_id", caller.ID)

	return s.toView(ctx, task)
}

// TransitionStatus moves a task to a new status. Admins may apply any
// transition; developers are restricted to the fixed table and only on
// tasks assigned to them. Status and completed_at change atomically;
// a concurrent write to the same task surfaces ErrTaskModified and the
// caller may retry against the refreshed state.
func (s *TaskService) TransitionStatus(
	ctx context.Context,
	caller *domain.User,
	taskID string,
	newStatus domain.TaskStatus,
) (*TaskView, error) {
	if !newStatus.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizer.CanTransition(caller, task, newStatus); err != nil {
		return nil, err
	}

	// completed_at is non-nil exactly when status is done
	var completedAt *time.Time
	switch {
	case newStatus == domain.TaskStatusDone && task.Status == domain.TaskStatusDone:
		completedAt = task.CompletedAt
	case newStatus == domain.TaskStatusDone:
		now := time.Now()
		completedAt = &now
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, task.Status, newStatus, completedAt); err != nil {
		return nil, err
	}

	slog.Info("task status changed",
		"task_id", taskID,
		"actor_id", caller.ID,
		"old_status", task.Status,
		"new_status", newStatus,
	)

	updated, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, updated)
}

// DeleteTask removes a task. Admin only; comments cascade.
func (s *TaskService) DeleteTask(ctx context.Context, caller *domain.User, taskID string) error {
	if err := s.authorizer.RequireAdmin(caller); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	slog.Info("task deleted", "task_id", taskID, "actor_id", caller.ID)
	return nil
}

// ListTasks returns one page of tasks visible to the caller, with optional
// filters intersected with the visibility scope.
func (s *TaskService) ListTasks(ctx context.Context, caller *domain.User, params ListTasksParams) (*TaskPage, error) {
	if err := ValidatePagination(params.Page, params.PerPage); err != nil {
		return nil, err
	}

	filters := repository.TaskListFilters{
		Scope:  s.authorizer.Scope(caller),
		Search: params.Search,
		Limit:  params.PerPage,
		Offset: (params.Page - 1) * params.PerPage,
	}
	filters.SortColumn, filters.SortDesc = ResolveSort(params.SortBy, params.Order)

	if params.Status != "" {
		status := domain.TaskStatus(params.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		filters.Status = &status
	}
	if params.Priority != "" {
		priority := domain.TaskPriority(params.Priority)
		if !priority.IsValid() {
			return nil, domain.ErrInvalidPriority
		}
		filters.Priority = &priority
	}
	if params.AssigneeID != "" {
		filters.AssigneeID = &params.AssigneeID
	}

	tasks, total, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	views, err := s.toViews(ctx, tasks)
	if err != nil {
		return nil, err
	}

	return &TaskPage{
		Items:   views,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
		Pages:   TotalPages(total, params.PerPage),
	}, nil
}

// OverdueTasks returns tasks past their deadline and not done, sorted by
// deadline ascending. Admin only.
func (s *TaskService) OverdueTasks(ctx context.Context, caller *domain.User) ([]TaskView, error) {
	if err := s.authorizer.RequireAdmin(caller); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindOverdue(ctx)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, tasks)
}

// GetStats returns aggregate task statistics. Admin only.
func (s *TaskService) GetStats(ctx context.Context, caller *domain.User) (*repository.StatsResult, error) {
	if err := s.authorizer.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.taskRepo.GetStats(ctx)
}
