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

// userColumns is the shared list of columns for user queries.
var userColumns = []string{
	"id", "full_name", "email", "hashed_password", "role", "status",
	"approved_by", "created_at", "updated_at",
}

// UserRepository handles database operations for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// scanUser scans a single row into a User struct.
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.HashedPassword,
		&user.Role,
		&user.Status,
		&user.ApprovedBy,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// scanUsers scans multiple rows into a slice of User structs.
func scanUsers(rows pgx.Rows) ([]*domain.User, error) {
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return users, nil
}

// Create inserts a new user and returns it with generated fields populated.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := psql.
		Insert("users").
		Columns("full_name", "email", "hashed_password", "role", "status").
		Values(user.FullName, user.Email, user.HashedPassword, user.Role, user.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for user: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByEmail query: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves all users ordered by registration time, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for users: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	return scanUsers(rows)
}

// ListPending retrieves users awaiting approval, newest first.
func (r *UserRepository) ListPending(ctx context.Context) ([]*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"status": domain.UserStatusPending}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListPending query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending users: %w", err)
	}

	return scanUsers(rows)
}

// ListApprovedDevelopers retrieves approved developers ordered by name.
func (r *UserRepository) ListApprovedDevelopers(ctx context.Context) ([]*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{
			"role":   domain.UserRoleDeveloper,
			"status": domain.UserStatusApproved,
		}).
		OrderBy("full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListApprovedDevelopers query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query approved developers: %w", err)
	}

	return scanUsers(rows)
}

// UpdateStatus sets a user's approval status; approvedBy records the acting
// admin on approval and is nil otherwise.
func (r *UserRepository) UpdateStatus(
	ctx context.Context,
	userID string,
	status domain.UserStatus,
	approvedBy *string,
) error {
	query, args, err := psql.
		Update("users").
		Set("status", status).
		Set("approved_by", approvedBy).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatus query for user %s: %w", userID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// UpdateRole changes a user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	query, args, err := psql.
		Update("users").
		Set("role", role).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateRole query for user %s: %w", userID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// GetBriefsByIDs resolves user ids to brief identity for response shaping.
// Missing ids are simply absent from the result, so a dangling reference
// behaves as no-assignee.
func (r *UserRepository) GetBriefsByIDs(ctx context.Context, userIDs []string) (map[string]domain.UserBrief, error) {
	briefs := make(map[string]domain.UserBrief, len(userIDs))
	if len(userIDs) == 0 {
		return briefs, nil
	}

	query, args, err := psql.
		Select("id", "full_name", "email").
		From("users").
		Where(sq.Eq{"id": userIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetBriefsByIDs query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query user briefs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var brief domain.UserBrief
		if err := rows.Scan(&brief.ID, &brief.FullName, &brief.Email); err != nil {
			return nil, fmt.Errorf("scan user brief: %w", err)
		}
		briefs[brief.ID] = brief
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return briefs, nil
}
