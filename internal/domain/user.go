// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account together with its embedded movie reviews.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`                          // Assigned at creation, never changes
	Name           string    `db:"name" json:"name"`                      // Display name
	UserName       string    `db:"user_name" json:"userName"`             // Login handle, not unique
	Password       string    `db:"password" json:"-"`                     // bcrypt hash
	ReviewedMovies Reviews   `db:"reviewed_movies" json:"reviewedMovies"` // Append-only, JSONB in DB
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"` // Only set at creation
}

// NewUser creates a new User instance with a fresh identifier.
// passwordHash must already be hashed. Timestamps carry microsecond precision,
// the resolution of a Postgres TIMESTAMPTZ, so the created record matches
// later reads.
func NewUser(name, userName, passwordHash string) *User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &User{
		ID:             uuid.New(),
		Name:           name,
		UserName:       userName,
		Password:       passwordHash,
		ReviewedMovies: Reviews{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// UserResponse is the only shape in which a user leaves the API.
// It has no password field.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	UserName       string    `json:"userName"`
	ReviewedMovies Reviews   `json:"reviewedMovies"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Response strips the password hash from u.
func (u *User) Response() UserResponse {
	reviews := u.ReviewedMovies
	if reviews == nil {
		reviews = Reviews{}
	}
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		UserName:       u.UserName,
		ReviewedMovies: reviews,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// UserResponses shapes a list of users.
func UserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].Response())
	}
	return out
}
