package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/service"
)

func adminUser() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin, Status: domain.UserStatusApproved}
}

func developerUser(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.UserRoleDeveloper, Status: domain.UserStatusApproved}
}

func taskAssignedTo(assigneeID string, status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		ID:         "task-1",
		Title:      "Test task",
		Status:     status,
		Priority:   domain.TaskPriorityMedium,
		AssigneeID: &assigneeID,
		CreatorID:  "admin-1",
	}
}

func TestScope_Admin(t *testing.T) {
	authz := service.NewAuthorizer()

	scope := authz.Scope(adminUser())

	assert.True(t, scope.All)
	assert.Nil(t, scope.AssigneeID)
	assert.True(t, scope.Allows(taskAssignedTo("someone-else", domain.TaskStatusNew)))
}

func TestScope_Developer(t *testing.T) {
	authz := service.NewAuthorizer()
	dev := developerUser("dev-1")

	scope := authz.Scope(dev)

	assert.False(t, scope.All)
	require.NotNil(t, scope.AssigneeID)
	assert.Equal(t, "dev-1", *scope.AssigneeID)
	assert.True(t, scope.Allows(taskAssignedTo("dev-1", domain.TaskStatusNew)))
	assert.False(t, scope.Allows(taskAssignedTo("dev-2", domain.TaskStatusNew)))
}

func TestScope_UnknownRoleDeniesAll(t *testing.T) {
	authz := service.NewAuthorizer()
	stranger := &domain.User{ID: "x", Role: domain.UserRole("auditor")}

	scope := authz.Scope(stranger)

	assert.False(t, scope.All)
	assert.Nil(t, scope.AssigneeID)
	assert.False(t, scope.Allows(taskAssignedTo("x", domain.TaskStatusNew)))
	assert.False(t, scope.Allows(&domain.Task{ID: "unassigned"}))
}

func TestCanView(t *testing.T) {
	authz := service.NewAuthorizer()

	assert.NoError(t, authz.CanView(adminUser(), taskAssignedTo("dev-2", domain.TaskStatusNew)))
	assert.NoError(t, authz.CanView(developerUser("dev-1"), taskAssignedTo("dev-1", domain.TaskStatusNew)))

	err := authz.CanView(developerUser("dev-1"), taskAssignedTo("dev-2", domain.TaskStatusNew))
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	err = authz.CanView(developerUser("dev-1"), &domain.Task{ID: "unassigned"})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestCanTransition_DeveloperTable(t *testing.T) {
	authz := service.NewAuthorizer()
	dev := developerUser("dev-1")

	tests := []struct {
		name    string
		from    domain.TaskStatus
		to      domain.TaskStatus
		wantErr error
	}{
		{"new to in_progress", domain.TaskStatusNew, domain.TaskStatusInProgress, nil},
		{"in_progress to review", domain.TaskStatusInProgress, domain.TaskStatusReview, nil},
		{"review back to in_progress", domain.TaskStatusReview, domain.TaskStatusInProgress, nil},
		{"new to review skips a step", domain.TaskStatusNew, domain.TaskStatusReview, domain.ErrInvalidTransition},
		{"new to done not allowed", domain.TaskStatusNew, domain.TaskStatusDone, domain.ErrInvalidTransition},
		{"in_progress to done not allowed", domain.TaskStatusInProgress, domain.TaskStatusDone, domain.ErrInvalidTransition},
		{"review to done not allowed", domain.TaskStatusReview, domain.TaskStatusDone, domain.ErrInvalidTransition},
		{"done is terminal", domain.TaskStatusDone, domain.TaskStatusInProgress, domain.ErrInvalidTransition},
		{"no self loop on new", domain.TaskStatusNew, domain.TaskStatusNew, domain.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.CanTransition(dev, taskAssignedTo("dev-1", tt.from), tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanTransition_AdminUnrestricted(t *testing.T) {
	authz := service.NewAuthorizer()
	admin := adminUser()

	statuses := []domain.TaskStatus{
		domain.TaskStatusNew,
		domain.TaskStatusInProgress,
		domain.TaskStatusReview,
		domain.TaskStatusDone,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			assert.NoError(t, authz.CanTransition(admin, taskAssignedTo("dev-2", from), to))
		}
	}
}

func TestCanTransition_AssignmentCheckedBeforeTable(t *testing.T) {
	authz := service.NewAuthorizer()
	dev := developerUser("dev-1")

	// Even a transition the table would reject reports access denied when
	// the task belongs to someone else.
	err := authz.CanTransition(dev, taskAssignedTo("dev-2", domain.TaskStatusDone), domain.TaskStatusNew)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.NotErrorIs(t, err, domain.ErrInvalidTransition)

	// Valid-shaped transition on an unassigned task is still denied.
	err = authz.CanTransition(dev, &domain.Task{ID: "t", Status: domain.TaskStatusNew}, domain.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestCanTransition_UnknownRole(t *testing.T) {
	authz := service.NewAuthorizer()
	stranger := &domain.User{ID: "x", Role: domain.UserRole("auditor")}

	err := authz.CanTransition(stranger, taskAssignedTo("x", domain.TaskStatusNew), domain.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestRequireAdmin(t *testing.T) {
	authz := service.NewAuthorizer()

	assert.NoError(t, authz.RequireAdmin(adminUser()))
	assert.ErrorIs(t, authz.RequireAdmin(developerUser("dev-1")), domain.ErrAccessDenied)
}
