package auth

import (
	"net/http"

	"github.com/markbates/goth"
)

// Authenticator runs the calendar link OAuth flow.
type Authenticator interface {
	BeginUserAuth(w http.ResponseWriter, r *http.Request)
	CompleteUserAuth(w http.ResponseWriter, r *http.Request) (goth.User, error)
}
