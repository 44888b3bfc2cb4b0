package domain

import "time"

// TaskStatus represents the status of a task in the state machine.
type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

// Task represents a unit of work assigned by an admin to a developer.
// CompletedAt is non-nil exactly when Status is done.
type Task struct {
	ID            string
	Title         string
	Description   *string
	Status        TaskStatus
	Priority      TaskPriority
	AssigneeID    *string
	CreatorID     string
	Deadline      *time.Time
	CompletedAt   *time.Time
	CommentsCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAssignedTo checks if the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// IsOverdue reports whether the task has a deadline strictly in the past
// and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && t.Status != TaskStatusDone
}

// TaskScope is the visibility predicate derived from a caller's role.
// The zero value denies everything, so an unrecognized role fails closed.
type TaskScope struct {
	All        bool
	AssigneeID *string
}

// Allows reports whether the scope permits observing or mutating the task.
func (s TaskScope) Allows(t *Task) bool {
	if s.All {
		return true
	}
	if s.AssigneeID != nil {
		return t.IsAssignedTo(*s.AssigneeID)
	}
	return false
}
