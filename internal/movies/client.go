// internal/movies/client.go
package movies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"cinelog/internal/metrics"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "http://www.omdbapi.com/"
	// DefaultTimeout bounds one request to the movie service.
	DefaultTimeout = 10 * time.Second
	// RecommendationPages is the page range Recommended draws from.
	RecommendationPages = 100

	breakerName     = "omdb-api"
	maxResponseSize = 1 << 20
)

// ErrMovieNotFound is returned when the service has no match for a title.
var ErrMovieNotFound = errors.New("movie not found")

// Config holds movie service client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client queries an OMDb-compatible movie metadata service.
// All calls go through a circuit breaker.
type Client struct {
	baseURL  *url.URL
	apiKey   string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[[]byte]
	logger   *slog.Logger
	randPage func() int
}

// NewClient creates a movie client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid movie service URL %q: %w", cfg.BaseURL, err)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Movie service circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Client{
		baseURL:  base,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.Timeout},
		cb:       cb,
		logger:   logger,
		randPage: func() int { return rand.IntN(RecommendationPages) + 1 },
	}, nil
}

// ByTitle returns the best match for title.
func (c *Client) ByTitle(ctx context.Context, title string) (*Movie, error) {
	body, err := c.get(ctx, url.Values{"t": {title}})
	metrics.RecordMovieRequest("by_title", err)
	if err != nil {
		return nil, err
	}

	var raw rawMovie
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode movie: %w", err)
	}
	if raw.Response == "False" {
		return nil, ErrMovieNotFound
	}
	return raw.toMovie(), nil
}

// Page returns one page of the generic "movie" search.
// A page past the end yields an empty list.
func (c *Client) Page(ctx context.Context, page int) ([]Summary, error) {
	body, err := c.get(ctx, url.Values{
		"s":    {"movie"},
		"type": {"movie"},
		"page": {strconv.Itoa(page)},
	})
	metrics.RecordMovieRequest("page", err)
	if err != nil {
		return nil, err
	}

	var raw rawSearch
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode search page: %w", err)
	}
	if raw.Search == nil {
		return []Summary{}, nil
	}
	return raw.Search, nil
}

// Recommended returns a random page of movies.
func (c *Client) Recommended(ctx context.Context) ([]Summary, error) {
	return c.Page(ctx, c.randPage())
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	u := *c.baseURL
	u.RawQuery = params.Encode()

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("movie service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("movie service returned status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	})
	if err != nil {
		c.logger.Error("Movie service call failed", "error", err)
		return nil, err
	}
	return body, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
