// internal/client/apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"cinelog/internal/api/types"
	"cinelog/internal/domain"
)

// DefaultBaseURL is the API address used when none is configured.
const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client calls the cinelog REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates an API client for baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SignUp creates an account.
func (c *Client) SignUp(ctx context.Context, name, userName, password string) (*domain.UserResponse, error) {
	var user domain.UserResponse
	err := c.do(ctx, http.MethodPost, "/api/users", types.CreateUserRequest{
		Name:     name,
		UserName: userName,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and returns the account.
func (c *Client) Login(ctx context.Context, userName, password string) (*domain.UserResponse, error) {
	var user domain.UserResponse
	err := c.do(ctx, http.MethodPost, "/api/users/login", types.LoginRequest{
		UserName: userName,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches one account.
func (c *Client) Profile(ctx context.Context, id uuid.UUID) (*domain.UserResponse, error) {
	var user domain.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id.String(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Reviews fetches the review list of an account.
func (c *Client) Reviews(ctx context.Context, id uuid.UUID) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id.String()+"/reviewedMovies", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AddReview appends a review and returns the updated account.
func (c *Client) AddReview(ctx context.Context, id uuid.UUID, movieTitle string, movieID *string, comment string) (*domain.UserResponse, error) {
	var user domain.UserResponse
	err := c.do(ctx, http.MethodPatch, "/api/users/review/"+id.String(), types.AddReviewRequest{
		MovieTitle: movieTitle,
		MovieID:    movieID,
		Comment:    comment,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EditUsername changes the login handle and returns the updated account.
func (c *Client) EditUsername(ctx context.Context, id uuid.UUID, newUserName string) (*domain.UserResponse, error) {
	var user domain.UserResponse
	err := c.do(ctx, http.MethodPatch, "/api/users/"+id.String()+"/username", types.EditUsernameRequest{
		NewUserName: newUserName,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	var res types.SuccessResponse
	return c.do(ctx, http.MethodDelete, "/api/users/"+id.String(), nil, &res)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg types.ErrorResponse
		if json.Unmarshal(raw, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
