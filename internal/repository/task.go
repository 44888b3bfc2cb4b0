package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

// taskColumns is the shared list of columns for task queries. The last
// column is the derived comment count, owned by the comments table.
var taskColumns = []string{
	"id", "title", "description", "status", "priority", "assignee_id",
	"creator_id", "deadline", "completed_at", "created_at", "updated_at",
	"(SELECT COUNT(*) FROM comments c WHERE c.task_id = tasks.id) AS comments_count",
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.AssigneeID,
		&task.CreatorID,
		&task.Deadline,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CommentsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// Create inserts a new task and returns it with generated fields populated.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query, args, err := psql.
		Insert("tasks").
		Columns("title", "description", "status", "priority", "assignee_id", "creator_id", "deadline").
		Values(
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.AssigneeID,
			task.CreatorID,
			task.Deadline,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// UpdateTaskParams holds the partial-update field set for a task. Nil
// pointers leave the column untouched; the Clear flags write an explicit
// NULL, distinguishing "not provided" from "explicitly cleared".
type UpdateTaskParams struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Priority         *domain.TaskPriority
	AssigneeID       *string
	ClearAssignee    bool
	Deadline         *time.Time
	ClearDeadline    bool
}

// Update applies a partial update to a task. Only supplied fields change.
func (r *TaskRepository) Update(ctx context.Context, taskID string, params UpdateTaskParams) error {
	qb := psql.Update("tasks").Set("updated_at", sq.Expr("NOW()"))

	if params.Title != nil {
		qb = qb.Set("title", *params.Title)
	}
	if params.ClearDescription {
		qb = qb.Set("description", nil)
	} else if params.Description != nil {
		qb = qb.Set("description", *params.Description)
	}
	if params.Priority != nil {
		qb = qb.Set("priority", *params.Priority)
	}
	if params.ClearAssignee {
		qb = qb.Set("assignee_id", nil)
	} else if params.AssigneeID != nil {
		qb = qb.Set("assignee_id", *params.AssigneeID)
	}
	if params.ClearDeadline {
		qb = qb.Set("deadline", nil)
	} else if params.Deadline != nil {
		qb = qb.Set("deadline", *params.Deadline)
	}

	query, args, err := qb.Where(sq.Eq{"id": taskID}).ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// UpdateStatus updates the task status and completed_at together with
// optimistic locking. Returns ErrTaskModified if the task changed since it
// was read (oldStatus no longer matches), so the caller may retry against
// the refreshed state.
func (r *TaskRepository) UpdateStatus(
	ctx context.Context,
	taskID string,
	oldStatus domain.TaskStatus,
	newStatus domain.TaskStatus,
	completedAt *time.Time,
) error {
	query, args, err := psql.
		Update("tasks").
		Set("status", newStatus).
		Set("completed_at", completedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     taskID,
			"status": oldStatus,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskModified
	}

	return nil
}

// Delete removes a task. Comments cascade at the schema level.
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query, args, err := psql.
		Delete("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// FindOverdue retrieves tasks with a deadline strictly in the past that are
// not done, ordered by deadline ascending.
func (r *TaskRepository) FindOverdue(ctx context.Context) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where("deadline IS NOT NULL").
		Where("deadline < NOW()").
		Where(sq.NotEq{"status": domain.TaskStatusDone}).
		OrderBy("deadline ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindOverdue query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query overdue tasks: %w", err)
	}

	return scanTasks(rows)
}
