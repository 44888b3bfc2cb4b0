package dto

import (
	"time"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/repository"
	"github.com/boltayevjahongir/task-manager/internal/service"
)

// UserBrief is the identity subset embedded in task and comment responses.
type UserBrief struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserResponse represents a full user account.
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UsersListResponse represents a list of users.
type UsersListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

// LoginResponse represents a successful authentication.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

// SignupResponse represents a successful registration.
type SignupResponse struct {
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}

// TaskResponse represents a task with resolved assignee/creator identity.
type TaskResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	Assignee      *UserBrief `json:"assignee"`
	Creator       *UserBrief `json:"creator"`
	Deadline      *time.Time `json:"deadline"`
	CompletedAt   *time.Time `json:"completed_at"`
	CommentsCount int        `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TasksListResponse represents one page of tasks.
type TasksListResponse struct {
	Items   []TaskResponse `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Pages   int            `json:"pages"`
}

// OverdueTasksResponse represents the overdue task listing.
type OverdueTasksResponse struct {
	Items []TaskResponse `json:"items"`
	Total int            `json:"total"`
}

// DeveloperStats represents the per-developer task breakdown.
type DeveloperStats struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Total int    `json:"total"`
	Done  int    `json:"done"`
}

// StatsResponse represents aggregate task statistics.
type StatsResponse struct {
	TotalTasks   int              `json:"total_tasks"`
	ByStatus     map[string]int   `json:"by_status"`
	ByPriority   map[string]int   `json:"by_priority"`
	OverdueCount int              `json:"overdue_count"`
	ByDeveloper  []DeveloperStats `json:"by_developer"`
}

// CommentResponse represents a task comment.
type CommentResponse struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"task_id"`
	Text      string     `json:"text"`
	Author    *UserBrief `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

// CommentsListResponse represents the comments of a task.
type CommentsListResponse struct {
	Items []CommentResponse `json:"items"`
	Total int               `json:"total"`
}

// MessageResponse carries a plain informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserBrief converts domain.UserBrief to UserBrief.
func ToUserBrief(brief *domain.UserBrief) *UserBrief {
	if brief == nil {
		return nil
	}
	return &UserBrief{
		ID:       brief.ID,
		FullName: brief.FullName,
		Email:    brief.Email,
	}
}

// ToUserResponse converts domain.User to UserResponse.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUsersListResponse converts a slice of users to UsersListResponse.
func ToUsersListResponse(users []*domain.User) UsersListResponse {
	items := make([]UserResponse, len(users))
	for i, user := range users {
		items[i] = ToUserResponse(user)
	}
	return UsersListResponse{Items: items, Total: len(items)}
}

// ToTaskResponse converts a service.TaskView to TaskResponse.
func ToTaskResponse(view service.TaskView) TaskResponse {
	return TaskResponse{
		ID:            view.Task.ID,
		Title:         view.Task.Title,
		Description:   view.Task.Description,
		Status:        string(view.Task.Status),
		Priority:      string(view.Task.Priority),
		Assignee:      ToUserBrief(view.Assignee),
		Creator:       ToUserBrief(view.Creator),
		Deadline:      view.Task.Deadline,
		CompletedAt:   view.Task.CompletedAt,
		CommentsCount: view.Task.CommentsCount,
		CreatedAt:     view.Task.CreatedAt,
		UpdatedAt:     view.Task.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of task views.
func ToTaskResponses(views []service.TaskView) []TaskResponse {
	items := make([]TaskResponse, len(views))
	for i, view := range views {
		items[i] = ToTaskResponse(view)
	}
	return items
}

// ToTasksListResponse converts a service.TaskPage to TasksListResponse.
func ToTasksListResponse(page *service.TaskPage) TasksListResponse {
	return TasksListResponse{
		Items:   ToTaskResponses(page.Items),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
		Pages:   page.Pages,
	}
}

// ToStatsResponse converts a repository.StatsResult to StatsResponse.
func ToStatsResponse(stats *repository.StatsResult) StatsResponse {
	byDeveloper := make([]DeveloperStats, len(stats.ByDeveloper))
	for i, dev := range stats.ByDeveloper {
		byDeveloper[i] = DeveloperStats{
			ID:    dev.UserID,
			Name:  dev.FullName,
			Total: dev.Total,
			Done:  dev.Done,
		}
	}
	return StatsResponse{
		TotalTasks:   stats.TotalTasks,
		ByStatus:     stats.ByStatus,
		ByPriority:   stats.ByPriority,
		OverdueCount: stats.OverdueCount,
		ByDeveloper:  byDeveloper,
	}
}

// ToCommentResponse converts domain.Comment plus its author brief.
func ToCommentResponse(comment *domain.Comment, author *domain.UserBrief) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Text:      comment.Text,
		Author:    ToUserBrief(author),
		CreatedAt: comment.CreatedAt,
	}
}
