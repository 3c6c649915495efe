// Package auth guards the admin panel with a username/password login and
// server-side session tokens.
package auth

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no valid session")
)

type AuthProvider interface {
	// WithSessionAuthorization marks requests carrying a valid session in
	// their context. It never rejects a request.
	WithSessionAuthorization() func(http.Handler) http.Handler

	GetUserFromSession(r *http.Request) (string, error)

	Login(w http.ResponseWriter, username, password string) error
	Logout(w http.ResponseWriter, r *http.Request)
}
