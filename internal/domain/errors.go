package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskModified      = errors.New("task was modified concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Permission errors
	ErrAccessDenied = errors.New("access denied")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrAccountPending     = errors.New("account is pending approval")
	ErrAccountRejected    = errors.New("account has been rejected")
	ErrUserNotPending     = errors.New("user is not pending")

	// Comment errors
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyComment    = errors.New("comment text is required")

	// Validation errors
	ErrAssigneeNotApproved = errors.New("assignee is not an approved user")

	ErrEmptyTitle      = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 255 characters")
	ErrEmptyFullName   = errors.New("full name is required")
	ErrEmptyEmail      = errors.New("email is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidRole     = errors.New("invalid user role")
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPerPage  = errors.New("per_page must be between 1 and 100")
)
