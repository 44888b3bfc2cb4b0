package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

// TaskListFilters holds the visibility scope and all supported filters for
// task listing. The scope is applied unconditionally before any filter.
type TaskListFilters struct {
	Scope      domain.TaskScope
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	AssigneeID *string
	Search     string // case-insensitive substring match on title or description
	SortColumn string // resolved column name, never raw caller input
	SortDesc   bool
	Limit      int
	Offset     int
}

// apply adds the scope and filter predicates to a select builder.
func (f TaskListFilters) apply(qb sq.SelectBuilder) sq.SelectBuilder {
	switch {
	case f.Scope.All:
		// full visibility
	case f.Scope.AssigneeID != nil:
		qb = qb.Where(sq.Eq{"assignee_id": *f.Scope.AssigneeID})
	default:
		// unrecognized role fails closed
		qb = qb.Where("FALSE")
	}

	if f.Status != nil {
		qb = qb.Where(sq.Eq{"status": *f.Status})
	}
	if f.Priority != nil {
		qb = qb.Where(sq.Eq{"priority": *f.Priority})
	}
	if f.AssigneeID != nil {
		qb = qb.Where(sq.Eq{"assignee_id": *f.AssigneeID})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return qb
}

// List retrieves tasks matching the scoped filters, plus the total count of
// the filtered set computed before pagination.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, int, error) {
	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}

	qb := filters.apply(psql.Select(taskColumns...).From("tasks")).
		OrderBy(filters.SortColumn + " " + direction).
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := filters.apply(psql.Select("COUNT(*)").From("tasks")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}
