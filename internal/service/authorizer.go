package service

import (
	"fmt"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

// developerTransitions is the fixed table of status changes a developer may
// apply to their own tasks. Admins bypass it entirely. done is terminal for
// developers.
var developerTransitions = map[domain.TaskStatus][]domain.TaskStatus{
	domain.TaskStatusNew:        {domain.TaskStatusInProgress},
	domain.TaskStatusInProgress: {domain.TaskStatusReview},
	domain.TaskStatusReview:     {domain.TaskStatusInProgress},
	domain.TaskStatusDone:       {},
}

// Authorizer makes the per-operation role decision: what a caller may see
// and which mutations they may apply. It is pure and holds no state, so it
// can be tested without storage.
type Authorizer struct{}

// NewAuthorizer creates a new Authorizer.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Scope returns the task visibility predicate for a caller. Admins see
// everything, developers only tasks assigned to them. An unrecognized role
// gets the zero scope, which denies all access.
func (a *Authorizer) Scope(caller *domain.User) domain.TaskScope {
	switch caller.Role {
	case domain.UserRoleAdmin:
		return domain.TaskScope{All: true}
	case domain.UserRoleDeveloper:
		id := caller.ID
		return domain.TaskScope{AssigneeID: &id}
	default:
		return domain.TaskScope{}
	}
}

// CanView checks whether the caller may observe the task. An existing task
// outside the caller's scope yields ErrAccessDenied, never a not-found, so
// callers can distinguish "does not exist" from "exists, no access".
func (a *Authorizer) CanView(caller *domain.User, task *domain.Task) error {
	if !a.Scope(caller).Allows(task) {
		return fmt.Errorf("%w: task %s is not assigned to user %s", domain.ErrAccessDenied, task.ID, caller.ID)
	}
	return nil
}

// CanTransition checks whether the caller may move the task to newStatus.
// Assignment is checked before the transition table is consulted: a
// developer touching someone else's task gets ErrAccessDenied, not
// ErrInvalidTransition.
func (a *Authorizer) CanTransition(caller *domain.User, task *domain.Task, newStatus domain.TaskStatus) error {
	switch caller.Role {
	case domain.UserRoleAdmin:
		return nil
	case domain.UserRoleDeveloper:
		if !task.IsAssignedTo(caller.ID) {
			return fmt.Errorf("%w: task %s is not assigned to user %s", domain.ErrAccessDenied, task.ID, caller.ID)
		}
		for _, allowed := range developerTransitions[task.Status] {
			if allowed == newStatus {
				return nil
			}
		}
		return fmt.Errorf("%w: %s -> %s is not allowed for developers", domain.ErrInvalidTransition, task.Status, newStatus)
	default:
		return fmt.Errorf("%w: unrecognized role %q", domain.ErrAccessDenied, caller.Role)
	}
}

// RequireAdmin checks that the caller holds the admin role.
func (a *Authorizer) RequireAdmin(caller *domain.User) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin role required", domain.ErrAccessDenied)
	}
	return nil
}
