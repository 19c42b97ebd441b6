// internal/client/session/controller.go
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"cinelog/internal/client/apiclient"
	"cinelog/internal/domain"
	"cinelog/internal/movies"
)

// ErrNotLoggedIn is returned by operations that need an authenticated session.
var ErrNotLoggedIn = errors.New("not logged in")

// ErrLoginFailed is the only login error shown to the user.
var ErrLoginFailed = errors.New("an error occurred while signing in, please check your username and password and try again")

// ErrNoMovie is returned by Review when no movie is given.
var ErrNoMovie = errors.New("no movie selected")

// AccountAPI is the part of the REST API the controller uses.
type AccountAPI interface {
	SignUp(ctx context.Context, name, userName, password string) (*domain.UserResponse, error)
	Login(ctx context.Context, userName, password string) (*domain.UserResponse, error)
	Profile(ctx context.Context, id uuid.UUID) (*domain.UserResponse, error)
	Reviews(ctx context.Context, id uuid.UUID) ([]domain.Review, error)
	AddReview(ctx context.Context, id uuid.UUID, movieTitle string, movieID *string, comment string) (*domain.UserResponse, error)
	EditUsername(ctx context.Context, id uuid.UUID, newUserName string) (*domain.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// MovieLookup is the external movie metadata service.
type MovieLookup interface {
	ByTitle(ctx context.Context, title string) (*movies.Movie, error)
	Recommended(ctx context.Context) ([]movies.Summary, error)
}

// Controller drives the session through account and movie operations.
// Views read the session through Session and never mutate it directly.
type Controller struct {
	api     AccountAPI
	movies  MovieLookup
	session *Session
	logger  *slog.Logger
}

// NewController creates a controller with an anonymous session.
func NewController(api AccountAPI, movieLookup MovieLookup, logger *slog.Logger) *Controller {
	return &Controller{
		api:     api,
		movies:  movieLookup,
		session: New(),
		logger:  logger,
	}
}

// Session returns a snapshot of the current session.
func (c *Controller) Session() Session {
	return *c.session
}

// ToggleSignUp switches between the sign-up and sign-in forms.
func (c *Controller) ToggleSignUp() {
	c.session.ToggleSignUp()
}

// SignUp creates an account and, when the response carries an identifier,
// authenticates the session.
func (c *Controller) SignUp(ctx context.Context, name, userName, password string) (*domain.UserResponse, error) {
	user, err := c.api.SignUp(ctx, name, userName, password)
	if err != nil {
		c.logger.Error("Sign-up failed", "error", err)
		return nil, err
	}
	if user.ID != uuid.Nil {
		c.session.Authenticate(user.ID)
	}
	return user, nil
}

// Login authenticates the session. Any failure is reported as ErrLoginFailed;
// the cause is logged.
func (c *Controller) Login(ctx context.Context, userName, password string) (*domain.UserResponse, error) {
	user, err := c.api.Login(ctx, userName, password)
	if err != nil {
		c.logger.Error("An error occurred while signing in", "error", err)
		return nil, ErrLoginFailed
	}
	if user.ID == uuid.Nil {
		c.logger.Error("Login response carried no identifier")
		return nil, ErrLoginFailed
	}
	c.session.Authenticate(user.ID)
	return user, nil
}

// Logout returns the session to anonymous.
func (c *Controller) Logout() {
	c.session.Reset()
}

// Profile fetches the logged-in account.
func (c *Controller) Profile(ctx context.Context) (*domain.UserResponse, error) {
	id, err := c.userID()
	if err != nil {
		return nil, err
	}
	user, err := c.api.Profile(ctx, id)
	if err != nil {
		c.logger.Error("Error fetching profile", "error", err)
		return nil, err
	}
	return user, nil
}

// Reviews fetches the logged-in account's reviews.
func (c *Controller) Reviews(ctx context.Context) ([]domain.Review, error) {
	id, err := c.userID()
	if err != nil {
		return nil, err
	}
	reviews, err := c.api.Reviews(ctx, id)
	if err != nil {
		c.logger.Error("Error fetching reviewed movies", "error", err)
		return nil, err
	}
	return reviews, nil
}

// Review stores a comment on movie for the logged-in account.
func (c *Controller) Review(ctx context.Context, movie *movies.Movie, comment string) (*domain.UserResponse, error) {
	id, err := c.userID()
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrNoMovie
	}
	var movieID *string
	if movie.IMDbID != "" {
		imdbID := movie.IMDbID
		movieID = &imdbID
	}
	user, err := c.api.AddReview(ctx, id, movie.Title, movieID, comment)
	if err != nil {
		c.logger.Error("Error sending review", "error", err)
		return nil, err
	}
	return user, nil
}

// EditUsername changes the logged-in account's handle.
func (c *Controller) EditUsername(ctx context.Context, newUserName string) (*domain.UserResponse, error) {
	id, err := c.userID()
	if err != nil {
		return nil, err
	}
	user, err := c.api.EditUsername(ctx, id, newUserName)
	if err != nil {
		c.logger.Error("Error updating username", "error", err)
		return nil, err
	}
	return user, nil
}

// DeleteProfile removes the logged-in account and resets the session. An
// account that is already gone also resets the session.
func (c *Controller) DeleteProfile(ctx context.Context) error {
	id, err := c.userID()
	if err != nil {
		return err
	}
	if err := c.api.DeleteUser(ctx, id); err != nil {
		var apiErr *apiclient.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			c.logger.Error("Error deleting profile", "error", err)
			return err
		}
	}
	c.session.Reset()
	return nil
}

// Search looks a title up in the movie service.
func (c *Controller) Search(ctx context.Context, title string) (*movies.Movie, error) {
	movie, err := c.movies.ByTitle(ctx, title)
	if err != nil {
		if !errors.Is(err, movies.ErrMovieNotFound) {
			c.logger.Error("Error fetching movie", "title", title, "error", err)
		}
		return nil, err
	}
	return movie, nil
}

// Recommend returns a random page of movies.
func (c *Controller) Recommend(ctx context.Context) ([]movies.Summary, error) {
	list, err := c.movies.Recommended(ctx)
	if err != nil {
		c.logger.Error("Error fetching recommendations", "error", err)
		return nil, err
	}
	return list, nil
}

func (c *Controller) userID() (uuid.UUID, error) {
	if !c.session.LoggedIn {
		return uuid.Nil, ErrNotLoggedIn
	}
	return c.session.UserID, nil
}

var _ AccountAPI = (*apiclient.Client)(nil)

var _ MovieLookup = (*movies.Client)(nil)
