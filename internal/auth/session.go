package auth

import (
	"net/http"
	"time"

	"github.com/antonlindstrom/pgstore"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "foca_session"

	tokenKey  = "token"
	userIDKey = "user_id"
	bypassKey = "bypass"
)

// NewStore keeps sessions in Postgres. The SPA runs on another origin, so
// cookies are cross-site.
func NewStore(dbURL string, maxAge time.Duration, keyPairs ...[]byte) (*pgstore.PGStore, error) {
	store, err := pgstore.NewPGStore(dbURL, keyPairs...)
	if err != nil {
		return nil, err
	}

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}

	return store, nil
}

func GetSession(store sessions.Store, r *http.Request) (*sessions.Session, error) {
	return store.Get(r, SessionName)
}

// ClearSession expires the cookie and the stored row.
func ClearSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := GetSession(store, r)
	if err != nil && session == nil {
		return err
	}
	delete(session.Values, tokenKey)
	delete(session.Values, userIDKey)
	delete(session.Values, bypassKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
