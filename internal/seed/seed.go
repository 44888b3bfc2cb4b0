// Package seed fills an empty database with demo accounts and tasks so a
// fresh deployment has something to click through.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/boltayevjahongir/task-manager/internal/domain"
	"github.com/boltayevjahongir/task-manager/internal/repository"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

// Run seeds demo data. It refuses to touch a database that already has users.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	existing, err := userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("database already has %d users, refusing to seed", len(existing))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	admin, err := userRepo.Create(ctx, &domain.User{
		FullName:       "Alice Admin",
		Email:          "admin@example.com",
		HashedPassword: string(hash),
		Role:           domain.UserRoleAdmin,
		Status:         domain.UserStatusApproved,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	dev1, err := userRepo.Create(ctx, &domain.User{
		FullName:       "Bob Developer",
		Email:          "bob@example.com",
		HashedPassword: string(hash),
		Role:           domain.UserRoleDeveloper,
		Status:         domain.UserStatusApproved,
	})
	if err != nil {
		return fmt.Errorf("create developer: %w", err)
	}

	dev2, err := userRepo.Create(ctx, &domain.User{
		FullName:       "Carol Developer",
		Email:          "carol@example.com",
		HashedPassword: string(hash),
		Role:           domain.UserRoleDeveloper,
		Status:         domain.UserStatusApproved,
	})
	if err != nil {
		return fmt.Errorf("create developer: %w", err)
	}

	if _, err := userRepo.Create(ctx, &domain.User{
		FullName:       "Pete Pending",
		Email:          "pete@example.com",
		HashedPassword: string(hash),
		Role:           domain.UserRoleDeveloper,
		Status:         domain.UserStatusPending,
	}); err != nil {
		return fmt.Errorf("create pending user: %w", err)
	}

	now := time.Now()
	nextWeek := now.Add(7 * 24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	describe := func(s string) *string { return &s }

	tasks := []*domain.Task{
		{
			Title:       "Set up CI pipeline",
			Description: describe("Run linters and tests on every push."),
			Status:      domain.TaskStatusNew,
			Priority:    domain.TaskPriorityHigh,
			AssigneeID:  &dev1.ID,
			CreatorID:   admin.ID,
			Deadline:    &nextWeek,
		},
		{
			Title:       "Implement password reset flow",
			Description: describe("Email a one-time link, expire after an hour."),
			Status:      domain.TaskStatusInProgress,
			Priority:    domain.TaskPriorityMedium,
			AssigneeID:  &dev1.ID,
			CreatorID:   admin.ID,
		},
		{
			Title:      "Review data export endpoint",
			Status:     domain.TaskStatusReview,
			Priority:   domain.TaskPriorityLow,
			AssigneeID: &dev2.ID,
			CreatorID:  admin.ID,
		},
		{
			Title:       "Fix login rate limiting",
			Description: describe("Burst of failed logins should back off per account."),
			Status:      domain.TaskStatusNew,
			Priority:    domain.TaskPriorityUrgent,
			AssigneeID:  &dev2.ID,
			CreatorID:   admin.ID,
			Deadline:    &yesterday,
		},
		{
			Title:     "Draft onboarding checklist",
			Status:    domain.TaskStatusNew,
			Priority:  domain.TaskPriorityLow,
			CreatorID: admin.ID,
		},
	}

	for _, task := range tasks {
		if _, err := taskRepo.Create(ctx, task); err != nil {
			return fmt.Errorf("create task %q: %w", task.Title, err)
		}
	}

	// One finished task; completed_at must be set together with done
	doneTask, err := taskRepo.Create(ctx, &domain.Task{
		Title:       "Upgrade database driver",
		Description: describe("Bump pgx and re-run the migration suite."),
		Status:      domain.TaskStatusDone,
		Priority:    domain.TaskPriorityMedium,
		AssigneeID:  &dev1.ID,
		CreatorID:   admin.ID,
	})
	if err != nil {
		return fmt.Errorf("create done task: %w", err)
	}
	if err := taskRepo.UpdateStatus(ctx, doneTask.ID, domain.TaskStatusDone, domain.TaskStatusDone, &now); err != nil {
		return fmt.Errorf("stamp completed_at: %w", err)
	}

	comments := []*domain.Comment{
		{TaskID: tasks[1].ID, AuthorID: dev1.ID, Text: "Started on the token generation part."},
		{TaskID: tasks[1].ID, AuthorID: admin.ID, Text: "Remember to invalidate old links on reuse."},
		{TaskID: tasks[2].ID, AuthorID: dev2.ID, Text: "Ready for review, see the linked branch."},
	}
	for _, comment := range comments {
		if _, err := commentRepo.Create(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
	}

	slog.Info("seeded demo data",
		"users", 4,
		"tasks", len(tasks)+1,
		"comments", len(comments),
		"password", DemoPassword,
	)

	return nil
}
