// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinelog/internal/domain"
	"cinelog/internal/repository"
	"cinelog/internal/util"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, user_name, password, reviewed_movies, created_at, updated_at`

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
// Methods receive a DBExecutor, so the db handle is not stored.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// ListUsers returns all users ordered by creation time.
func (r *UserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`
	if err := q.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("%w: failed to list users: %w", util.ErrStore, err)
	}
	return users, nil
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.UserName,
		user.Password,
		user.ReviewedMovies,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to create user: %w", util.ErrStore, err)
	}
	return nil
}

// GetUserByID retrieves a user by identifier.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, q, fmt.Sprintf("get user by ID %s", id), query, id)
}

// GetUserByUserName retrieves the first-created user with the given handle.
// Handles are not unique, so the oldest match wins.
func (r *UserRepository) GetUserByUserName(ctx context.Context, q repository.DBExecutor, userName string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_name = $1 ORDER BY created_at, id LIMIT 1`
	return r.getOne(ctx, q, fmt.Sprintf("get user by username '%s'", userName), query, userName)
}

// AppendReview pushes review onto reviewed_movies in a single UPDATE, so
// concurrent appends never overwrite each other.
func (r *UserRepository) AppendReview(ctx context.Context, q repository.DBExecutor, id uuid.UUID, review domain.Review) (*domain.User, error) {
	element, err := json.Marshal([]domain.Review{review})
	if err != nil {
		return nil, fmt.Errorf("failed to encode review: %w", err)
	}

	query := `UPDATE users SET reviewed_movies = reviewed_movies || $2::jsonb
              WHERE id = $1
              RETURNING ` + userColumns
	return r.getOne(ctx, q, fmt.Sprintf("append review for user %s", id), query, id, string(element))
}

// UpdateUserName overwrites user_name. updated_at is left untouched.
func (r *UserRepository) UpdateUserName(ctx context.Context, q repository.DBExecutor, id uuid.UUID, userName string) (*domain.User, error) {
	query := `UPDATE users SET user_name = $2
              WHERE id = $1
              RETURNING ` + userColumns
	return r.getOne(ctx, q, fmt.Sprintf("update username for user %s", id), query, id, userName)
}

// DeleteUser removes a user row; the embedded reviews go with it.
func (r *UserRepository) DeleteUser(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete user %s: %w", util.ErrStore, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected after deleting user %s: %w", util.ErrStore, id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, q repository.DBExecutor, op, query string, args ...interface{}) (*domain.User, error) {
	var user domain.User
	if err := q.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to %s: %w", util.ErrStore, op, err)
	}
	return &user, nil
}
