// internal/client/apiclient/client_test.go
package apiclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cinelog/internal/api"
	"cinelog/internal/api/handler"
	"cinelog/internal/auth"
	"cinelog/internal/repository/memory"
	"cinelog/internal/service"
)

func newAPIServer(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewUserService(nil, memory.NewUserRepository(), auth.NewBcryptHasher(bcrypt.MinCost))
	srv := httptest.NewServer(api.NewRouter(handler.NewUserHandler(svc, logger), logger, api.RouterConfig{}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func TestClient_AgainstAPI(t *testing.T) {
	ctx := context.Background()
	c := newAPIServer(t)

	created, err := c.SignUp(ctx, "Ann", "ann1", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Ann", created.Name)

	user, err := c.Login(ctx, "ann1", "pw")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	movieID := "tt1160419"
	user, err = c.AddReview(ctx, created.ID, "Dune", &movieID, "great")
	require.NoError(t, err)
	require.Len(t, user.ReviewedMovies, 1)

	reviews, err := c.Reviews(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Dune", reviews[0].MovieTitle)
	assert.Equal(t, "great", reviews[0].Comment)

	user, err = c.EditUsername(ctx, created.ID, "ann2")
	require.NoError(t, err)
	assert.Equal(t, "ann2", user.UserName)

	profile, err := c.Profile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann2", profile.UserName)

	require.NoError(t, c.DeleteUser(ctx, created.ID))

	_, err = c.Profile(ctx, created.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_LoginErrorsCarryMessage(t *testing.T) {
	ctx := context.Background()
	c := newAPIServer(t)
	_, err := c.SignUp(ctx, "Ann", "ann1", "pw")
	require.NoError(t, err)

	_, err = c.Login(ctx, "ann1", "bad")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid password.", apiErr.Message)

	_, err = c.Login(ctx, "ghost", "pw")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "User not found.", apiErr.Message)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, time.Second).Profile(context.Background(), uuid.New())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Login(context.Background(), "ann1", "pw")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
