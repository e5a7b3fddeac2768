package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"foca/internal/database"
	"foca/internal/logging"
	"foca/internal/model"
)

// TokenParam is the query parameter that carries an access token on page load.
const TokenParam = "token"

// AdminName is the display name of the bypass identity.
const AdminName = "Administrador"

// Resolver turns an access token into the session user.
type Resolver struct {
	users        database.UserStore
	store        sessions.Store
	bypassToken  string
	bypassUserID int64
	now          func() time.Time
	log          logging.Logger
}

func NewResolver(users database.UserStore, store sessions.Store, bypassToken string, bypassUserID int64, log logging.Logger) *Resolver {
	return &Resolver{
		users:        users,
		store:        store,
		bypassToken:  bypassToken,
		bypassUserID: bypassUserID,
		now:          time.Now,
		log:          log,
	}
}

// Resolve looks token up without touching any session. Lookup failures are
// logged and leave the session unresolved.
func (r *Resolver) Resolve(ctx context.Context, token string) *model.Session {
	s := &model.Session{}
	if token == "" {
		return s
	}

	if r.isBypass(token) {
		s.User = r.admin()
		return s
	}

	t, err := r.users.FindAccessToken(ctx, token)
	if err != nil {
		r.log.Error(ctx, "token lookup failed", "err", err)
		return s
	}
	if t == nil || !t.Valid(r.now()) {
		return s
	}

	u, err := r.users.FindUserByID(ctx, t.UserID)
	if err != nil {
		r.log.Error(ctx, "user lookup failed", "user_id", t.UserID, "err", err)
		return s
	}
	s.User = u
	return s
}

// Load resolves the request the way a page load does: the query token wins
// over the one persisted in the cookie. A resolved token is persisted, an
// unresolved one is cleared.
func (r *Resolver) Load(w http.ResponseWriter, req *http.Request) *model.Session {
	ctx := req.Context()
	session := r.session(req)

	token := req.URL.Query().Get(TokenParam)
	if token == "" && session != nil {
		token, _ = session.Values[tokenKey].(string)
	}

	s := r.Resolve(ctx, token)
	if session == nil {
		return s
	}

	if s.Resolved() {
		session.Values[tokenKey] = token
		session.Values[userIDKey] = s.User.ID
		session.Values[bypassKey] = r.isBypass(token)
	} else {
		delete(session.Values, tokenKey)
		delete(session.Values, userIDKey)
		delete(session.Values, bypassKey)
	}
	if err := session.Save(req, w); err != nil {
		r.log.Error(ctx, "session save failed", "err", err)
	}
	return s
}

// Session resolves API calls. A cookie that already carries a user id is
// trusted for its lifetime; otherwise it falls back to Load. Bypass cookies
// are only trusted while their token is still the configured bypass.
func (r *Resolver) Session(w http.ResponseWriter, req *http.Request) *model.Session {
	ctx := req.Context()
	session := r.session(req)

	if session == nil || req.URL.Query().Get(TokenParam) != "" {
		return r.Load(w, req)
	}

	id, ok := session.Values[userIDKey].(int64)
	if !ok || id == 0 {
		return r.Load(w, req)
	}

	if bypassed, _ := session.Values[bypassKey].(bool); bypassed {
		if token, _ := session.Values[tokenKey].(string); r.isBypass(token) {
			return &model.Session{User: r.admin()}
		}
		return r.Load(w, req)
	}

	u, err := r.users.FindUserByID(ctx, id)
	if err != nil {
		r.log.Error(ctx, "user lookup failed", "user_id", id, "err", err)
		return &model.Session{}
	}
	return &model.Session{User: u}
}

func (r *Resolver) session(req *http.Request) *sessions.Session {
	session, err := GetSession(r.store, req)
	if err != nil {
		// gorilla still returns a fresh session for an undecodable cookie
		r.log.Warn(req.Context(), "session decode failed", "err", err)
	}
	return session
}

func (r *Resolver) isBypass(token string) bool {
	return r.bypassToken != "" && token == r.bypassToken
}

func (r *Resolver) admin() *model.User {
	return &model.User{ID: r.bypassUserID, Name: AdminName}
}
