// internal/client/cli/metrics_test.go
package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinelog/internal/movies"
)

func TestStartMetrics_ExposesMovieMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	omdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer omdb.Close()
	client, err := movies.NewClient(movies.Config{BaseURL: omdb.URL}, logger)
	require.NoError(t, err)
	_, err = client.ByTitle(context.Background(), "Nope")
	require.ErrorIs(t, err, movies.ErrMovieNotFound)

	ms, err := startMetrics("127.0.0.1:0", logger)
	require.NoError(t, err)
	defer ms.Close()

	resp, err := http.Get("http://" + ms.addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "cinelog_movie_requests_total")
	assert.Contains(t, string(body), "cinelog_circuit_breaker_state")
}

func TestStartMetrics_BadAddress(t *testing.T) {
	_, err := startMetrics("not-an-address", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
