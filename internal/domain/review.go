// internal/domain/review.go
package domain

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Review is a comment a user left on a movie. Reviews are embedded in the
// owning user record.
type Review struct {
	ID         uuid.UUID `json:"id"`
	MovieTitle string    `json:"movieTitle"`
	MovieID    *string   `json:"movieId,omitempty"` // External catalogue id, optional
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewReview creates a new Review instance.
func NewReview(movieTitle string, movieID *string, comment string) Review {
	return Review{
		ID:         uuid.New(),
		MovieTitle: movieTitle,
		MovieID:    movieID,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
}

// Reviews is the ordered review list stored as a JSONB array.
type Reviews []Review

// Value encodes the list as a JSON string so the driver sends it as text.
func (r Reviews) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Review(r))
	if err != nil {
		return nil, fmt.Errorf("failed to encode reviews: %w", err)
	}
	return string(b), nil
}

// Scan decodes a JSONB array column.
func (r *Reviews) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*r = Reviews{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("reviews: unsupported column type %T", src)
	}

	var out Reviews
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode reviews: %w", err)
	}
	if out == nil {
		out = Reviews{}
	}
	*r = out
	return nil
}
