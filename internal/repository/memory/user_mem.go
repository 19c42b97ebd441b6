// internal/repository/memory/user_mem.go
package memory

import (
	"context"
	"sync"

	"cinelog/internal/domain"
	"cinelog/internal/repository"
	"cinelog/internal/util"

	"github.com/google/uuid"
)

// UserRepository is an in-process repository.UserRepository.
// All mutations are serialised under mu, so AppendReview has the same
// no-lost-update guarantee as the PostgreSQL implementation.
// The DBExecutor argument is ignored.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User // creation order
}

// NewUserRepository creates an empty in-memory repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) ListUsers(ctx context.Context, _ repository.DBExecutor) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for i := range r.users {
		out = append(out, clone(&r.users[i]))
	}
	return out, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, _ repository.DBExecutor, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, clone(user))
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, _ repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, util.ErrNotFound
	}
	u := clone(&r.users[i])
	return &u, nil
}

func (r *UserRepository) GetUserByUserName(ctx context.Context, _ repository.DBExecutor, userName string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].UserName == userName {
			u := clone(&r.users[i])
			return &u, nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *UserRepository) AppendReview(ctx context.Context, _ repository.DBExecutor, id uuid.UUID, review domain.Review) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) {
		u.ReviewedMovies = append(u.ReviewedMovies, review)
	})
}

func (r *UserRepository) UpdateUserName(ctx context.Context, _ repository.DBExecutor, id uuid.UUID, userName string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) {
		u.UserName = userName
	})
}

func (r *UserRepository) DeleteUser(ctx context.Context, _ repository.DBExecutor, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return util.ErrNotFound
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

func (r *UserRepository) mutate(id uuid.UUID, fn func(*domain.User)) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, util.ErrNotFound
	}
	fn(&r.users[i])
	u := clone(&r.users[i])
	return &u, nil
}

// indexOf must be called with mu held.
func (r *UserRepository) indexOf(id uuid.UUID) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(u *domain.User) domain.User {
	c := *u
	c.ReviewedMovies = make(domain.Reviews, len(u.ReviewedMovies))
	copy(c.ReviewedMovies, u.ReviewedMovies)
	return c
}
