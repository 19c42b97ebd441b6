// internal/repository/user_repo.go
package repository

import (
	"context"

	"cinelog/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
// Every method is a single store operation; lookups of unknown records
// return util.ErrNotFound.
type UserRepository interface {
	// ListUsers returns every stored user in creation order.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// CreateUser inserts a new user.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by identifier.
	GetUserByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.User, error)
	// GetUserByUserName retrieves the oldest user with the given login handle.
	GetUserByUserName(ctx context.Context, q DBExecutor, userName string) (*domain.User, error)
	// AppendReview atomically appends review to the user's review list and
	// returns the updated user.
	AppendReview(ctx context.Context, q DBExecutor, id uuid.UUID, review domain.Review) (*domain.User, error)
	// UpdateUserName overwrites the login handle and returns the updated user.
	UpdateUserName(ctx context.Context, q DBExecutor, id uuid.UUID, userName string) (*domain.User, error)
	// DeleteUser removes the user and its embedded reviews.
	DeleteUser(ctx context.Context, q DBExecutor, id uuid.UUID) error
}
