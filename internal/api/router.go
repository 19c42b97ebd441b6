// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cinelog/internal/api/handler"
)

// DefaultTimeout bounds a request when RouterConfig.RequestTimeout is unset.
const DefaultTimeout = 60 * time.Second

// RouterConfig holds the HTTP-layer settings.
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(userHandler *handler.UserHandler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(Metrics)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// User API routes
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Post("/login", userHandler.Login)
		r.Patch("/review/{id}", userHandler.AddReview)
		r.Get("/{id}", userHandler.GetProfile)
		r.Get("/{id}/reviewedMovies", userHandler.ListReviews)
		r.Patch("/{id}/username", userHandler.EditUsername)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	return r
}
