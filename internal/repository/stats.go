package repository

import (
	"context"
	"fmt"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

// DeveloperStatsResult holds the per-developer task breakdown.
type DeveloperStatsResult struct {
	UserID   string
	FullName string
	Total    int
	Done     int
}

// StatsResult holds the aggregate task statistics.
type StatsResult struct {
	TotalTasks   int
	ByStatus     map[string]int
	ByPriority   map[string]int
	OverdueCount int
	ByDeveloper  []DeveloperStatsResult
}

// GetStats retrieves aggregate task statistics.
func (r *TaskRepository) GetStats(ctx context.Context) (*StatsResult, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count total tasks: %w", err)
	}

	byStatus := make(map[string]int)
	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM tasks
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		byStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}

	byPriority := make(map[string]int)
	rows, err = r.pool.Query(ctx, `
		SELECT priority, COUNT(*)
		FROM tasks
		GROUP BY priority
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks by priority: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var priority string
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, fmt.Errorf("scan priority count: %w", err)
		}
		byPriority[priority] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate priority rows: %w", err)
	}

	var overdueCount int
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tasks
		WHERE deadline IS NOT NULL
		  AND deadline < NOW()
		  AND status != $1
	`, domain.TaskStatusDone).Scan(&overdueCount)
	if err != nil {
		return nil, fmt.Errorf("count overdue tasks: %w", err)
	}

	// Inner join keeps only approved developers with at least one assignment.
	byDeveloper := []DeveloperStatsResult{}
	rows, err = r.pool.Query(ctx, `
		SELECT
			u.id,
			u.full_name,
			COUNT(t.id) AS total,
			COUNT(t.id) FILTER (WHERE t.status = $3) AS done
		FROM users u
		JOIN tasks t ON t.assignee_id = u.id
		WHERE u.role = $1 AND u.status = $2
		GROUP BY u.id, u.full_name
		ORDER BY u.full_name
	`, domain.UserRoleDeveloper, domain.UserStatusApproved, domain.TaskStatusDone)
	if err != nil {
		return nil, fmt.Errorf("query developer stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var result DeveloperStatsResult
		if err := rows.Scan(&result.UserID, &result.FullName, &result.Total, &result.Done); err != nil {
			return nil, fmt.Errorf("scan developer stats: %w", err)
		}
		byDeveloper = append(byDeveloper, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate developer stats rows: %w", err)
	}

	return &StatsResult{
		TotalTasks:   total,
		ByStatus:     byStatus,
		ByPriority:   byPriority,
		OverdueCount: overdueCount,
		ByDeveloper:  byDeveloper,
	}, nil
}
