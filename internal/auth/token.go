package auth

import (
	"context"
	"sync"
	"time"

	"github.com/markbates/goth"
	"golang.org/x/oauth2"

	"foca/internal/database"
	"foca/internal/model"
)

// expiryDelta refreshes tokens slightly before they expire.
const expiryDelta = time.Minute

// CredentialSource is an oauth2.TokenSource over stored Google credentials.
// Refreshed tokens go through the provider and are written back.
type CredentialSource struct {
	mu    sync.Mutex
	ctx   context.Context
	creds *model.GoogleCredentials
	users database.UserStore
	p     goth.Provider
	now   func() time.Time
}

func NewCredentialSource(ctx context.Context, creds *model.GoogleCredentials, users database.UserStore, p goth.Provider) *CredentialSource {
	return &CredentialSource{ctx: ctx, creds: creds, users: users, p: p, now: time.Now}
}

func (s *CredentialSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.now().Add(expiryDelta).Before(s.creds.TokenExpiry) {
		return s.token(), nil
	}

	if err := RefreshToken(s.ctx, s.creds, s.users, s.p); err != nil {
		return nil, err
	}
	return s.token(), nil
}

func (s *CredentialSource) token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.creds.AccessToken,
		RefreshToken: s.creds.RefreshToken,
		Expiry:       s.creds.TokenExpiry,
		TokenType:    "Bearer",
	}
}

// RefreshToken exchanges the stored refresh token and saves the rotated pair.
func RefreshToken(ctx context.Context, c *model.GoogleCredentials, users database.UserStore, p goth.Provider) error {
	n, err := p.RefreshToken(c.RefreshToken)
	if err != nil {
		return err
	}

	c.AccessToken = n.AccessToken
	if n.RefreshToken != "" {
		c.RefreshToken = n.RefreshToken
	}
	c.TokenExpiry = n.Expiry

	return users.SaveGoogleCredentials(ctx, c)
}
