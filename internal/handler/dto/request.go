package dto

import "time"

// SignupRequest represents the request body for POST /auth/signup.
type SignupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the request body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// UpdateTaskRequest represents the request body for PUT /tasks/:id.
// Omitted fields stay untouched; an explicit null clears nullable fields.
type UpdateTaskRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Priority    Optional[string]    `json:"priority"`
	AssigneeID  Optional[string]    `json:"assignee_id"`
	Deadline    Optional[time.Time] `json:"deadline"`
}

// TransitionStatusRequest represents the request body for PATCH /tasks/:id/status.
type TransitionStatusRequest struct {
	Status string `json:"status"`
}

// ChangeRoleRequest represents the request body for PATCH /users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// CreateCommentRequest represents the request body for POST /tasks/:id/comments.
type CreateCommentRequest struct {
	Text string `json:"text"`
}
