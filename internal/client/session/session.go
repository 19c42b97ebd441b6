// internal/client/session/session.go
package session

import (
	"fmt"

	"github.com/google/uuid"
)

// Session is the client's view state. It starts anonymous and is never
// persisted.
type Session struct {
	LoggedIn   bool
	UserID     uuid.UUID
	ShowSignUp bool // anonymous only: sign-up form instead of sign-in
}

// New returns an anonymous session showing the sign-in form.
func New() *Session {
	return &Session{}
}

// Authenticate moves the session to the authenticated state for id.
func (s *Session) Authenticate(id uuid.UUID) {
	s.LoggedIn = true
	s.UserID = id
	s.ShowSignUp = false
}

// Reset returns the session to the anonymous state.
func (s *Session) Reset() {
	s.LoggedIn = false
	s.UserID = uuid.Nil
	s.ShowSignUp = false
}

// ToggleSignUp flips between the sign-up and sign-in forms. It has no effect
// once authenticated.
func (s *Session) ToggleSignUp() {
	if s.LoggedIn {
		return
	}
	s.ShowSignUp = !s.ShowSignUp
}

// String renders the session for prompts.
func (s Session) String() string {
	switch {
	case s.LoggedIn:
		return fmt.Sprintf("user %s", s.UserID)
	case s.ShowSignUp:
		return "sign-up"
	default:
		return "anonymous"
	}
}
