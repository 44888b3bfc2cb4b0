package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boltayevjahongir/task-manager/internal/domain"
)

// CommentRepository handles database operations for comments.
type CommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts a new comment and returns it with generated fields populated.
func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	query, args, err := psql.
		Insert("comments").
		Columns("task_id", "author_id", "text").
		Values(comment.TaskID, comment.AuthorID, comment.Text).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for comment: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}

// GetByID retrieves a comment by ID.
func (r *CommentRepository) GetByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	query, args, err := psql.
		Select("id", "task_id", "author_id", "text", "created_at", "updated_at").
		From("comments").
		Where(sq.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for comment: %w", err)
	}

	var comment domain.Comment
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.AuthorID,
		&comment.Text,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment: %w", err)
	}

	return &comment, nil
}

// ListByTask retrieves all comments for a task, oldest first.
func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	query, args, err := psql.
		Select("id", "task_id", "author_id", "text", "created_at", "updated_at").
		From("comments").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return comments, nil
}

// Delete removes a comment.
func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	query, args, err := psql.
		Delete("comments").
		Where(sq.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Delete query for comment %s: %w", commentID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}

	return nil
}
