package auth

import (
	"net/http"

	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"google.golang.org/api/calendar/v3"
)

const ProviderName = "google"

// NewGoogleProvider registers the Google provider with calendar event scope.
// Consent is forced so Google always returns a refresh token.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) goth.Provider {
	gp := google.New(clientID, clientSecret, callbackURL, calendar.CalendarEventsScope, "email", "profile")
	gp.SetPrompt("consent")
	goth.UseProviders(gp)
	return gp
}

// GothicAuthenticator is the real implementation of the Authenticator interface.
type GothicAuthenticator struct{}

func NewGothicAuthenticator() *GothicAuthenticator {
	return &GothicAuthenticator{}
}

func (a *GothicAuthenticator) BeginUserAuth(w http.ResponseWriter, r *http.Request) {
	gothic.BeginAuthHandler(w, gothic.GetContextWithProvider(r, ProviderName))
}

func (a *GothicAuthenticator) CompleteUserAuth(w http.ResponseWriter, r *http.Request) (goth.User, error) {
	return gothic.CompleteUserAuth(w, gothic.GetContextWithProvider(r, ProviderName))
}
