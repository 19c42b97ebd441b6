// internal/api/types/types.go
package types

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SuccessResponse acknowledges an operation that returns no document.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CreateUserRequest represents the request body for sign-up.
type CreateUserRequest struct {
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for sign-in.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// AddReviewRequest represents the request body for adding a review.
type AddReviewRequest struct {
	MovieTitle string  `json:"movieTitle"`
	MovieID    *string `json:"movieId,omitempty"`
	Comment    string  `json:"comment"`
}

// EditUsernameRequest represents the request body for a username change.
type EditUsernameRequest struct {
	NewUserName string `json:"newUserName"`
}
