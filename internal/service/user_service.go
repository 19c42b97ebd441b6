// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"cinelog/internal/auth"
	"cinelog/internal/domain"
	"cinelog/internal/repository"
	"cinelog/internal/util"

	"github.com/google/uuid"
)

// UserService defines the interface for account and review business logic.
// Each method performs at most one store operation.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, name, userName, password string) (*domain.User, error)
	Login(ctx context.Context, userName, password string) (*domain.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListReviews(ctx context.Context, id uuid.UUID) (domain.Reviews, error)
	AddReview(ctx context.Context, id uuid.UUID, input ReviewInput) (*domain.User, error)
	EditUsername(ctx context.Context, id uuid.UUID, userName string) (*domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// ReviewInput is the client-supplied part of a review.
type ReviewInput struct {
	MovieTitle string
	MovieID    *string
	Comment    string
}

// userService implements the UserService interface.
type userService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	hasher     auth.PasswordHasher
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
) UserService {
	return &userService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		hasher:     hasher,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser hashes password and stores a new account. No field is validated.
func (s *userService) CreateUser(ctx context.Context, name, userName, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := domain.NewUser(name, userName, hash)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the password of the oldest account with userName.
// It returns util.ErrUserNotFound for an unknown handle and
// util.ErrInvalidCredentials for a wrong password.
func (s *userService) Login(ctx context.Context, userName, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUserName(ctx, s.dbExecutor, userName)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) ListReviews(ctx context.Context, id uuid.UUID) (domain.Reviews, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("list reviews %s: %w", id, err)
	}
	if user.ReviewedMovies == nil {
		return domain.Reviews{}, nil
	}
	return user.ReviewedMovies, nil
}

// AddReview appends a review in one atomic store operation. Duplicates are
// kept.
func (s *userService) AddReview(ctx context.Context, id uuid.UUID, input ReviewInput) (*domain.User, error) {
	review := domain.NewReview(input.MovieTitle, input.MovieID, input.Comment)
	user, err := s.userRepo.AppendReview(ctx, s.dbExecutor, id, review)
	if err != nil {
		return nil, fmt.Errorf("add review %s: %w", id, err)
	}
	return user, nil
}

// EditUsername overwrites the login handle unconditionally.
func (s *userService) EditUsername(ctx context.Context, id uuid.UUID, userName string) (*domain.User, error) {
	user, err := s.userRepo.UpdateUserName(ctx, s.dbExecutor, id, userName)
	if err != nil {
		return nil, fmt.Errorf("edit username %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.DeleteUser(ctx, s.dbExecutor, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}
