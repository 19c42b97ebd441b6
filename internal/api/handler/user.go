// internal/api/handler/user.go
package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"cinelog/internal/api/types"
	"cinelog/internal/domain"
	"cinelog/internal/metrics"
	"cinelog/internal/service"
	"cinelog/internal/util"
)

// UserHandler handles HTTP requests for accounts and reviews.
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *UserHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *UserHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Server error."

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid request body."
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "User not found."
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusBadRequest
		message = "User not found."
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusBadRequest
		message = "Invalid password."
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Message: message})
}

// userID parses the {id} route parameter. A malformed identifier cannot name
// a record, so it is reported as not found.
func userID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, util.ErrNotFound
	}
	return id, nil
}

// decode reads a JSON body into dst. An empty body decodes as {}.
func decode(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return util.ErrInvalidInput
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return util.ErrInvalidInput
	}
	return nil
}

// ListUsers returns every account.
// GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, domain.UserResponses(users))
}

// CreateUser handles sign-up.
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.UserName, req.Password)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	metrics.UsersCreated.Inc()
	h.respondWithJSON(w, http.StatusOK, user.Response())
}

// Login verifies credentials. No session is created; the client keeps the
// returned identifier.
// POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.Login(r.Context(), req.UserName, req.Password)
	switch {
	case err == nil:
		metrics.LoginAttempts.WithLabelValues("success").Inc()
	case util.IsError(err, util.ErrUserNotFound):
		metrics.LoginAttempts.WithLabelValues("unknown_user").Inc()
	case util.IsError(err, util.ErrInvalidCredentials):
		metrics.LoginAttempts.WithLabelValues("bad_password").Inc()
	default:
		metrics.LoginAttempts.WithLabelValues("error").Inc()
	}
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, user.Response())
}

// GetProfile returns one account.
// GET /api/users/{id}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, user.Response())
}

// ListReviews returns only the review list of an account.
// GET /api/users/{id}/reviewedMovies
func (h *UserHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, reviews)
}

// AddReview appends a review to an account.
// PATCH /api/users/review/{id}
func (h *UserHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req types.AddReviewRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.AddReview(r.Context(), id, service.ReviewInput{
		MovieTitle: req.MovieTitle,
		MovieID:    req.MovieID,
		Comment:    req.Comment,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	metrics.ReviewsAppended.Inc()
	h.respondWithJSON(w, http.StatusOK, user.Response())
}

// EditUsername overwrites the login handle.
// PATCH /api/users/{id}/username
func (h *UserHandler) EditUsername(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req types.EditUsernameRequest
	if err := decode(r, &req); err != nil {
		h.respondWithError(w, err)
		return
	}

	user, err := h.service.EditUsername(r.Context(), id, req.NewUserName)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, user.Response())
}

// DeleteUser removes an account.
// DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.SuccessResponse{Success: true})
}
