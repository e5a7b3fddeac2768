package database_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foca/internal/auth"
	"foca/internal/database"
	"foca/internal/logging"
)

func TestIntegration_TokenResolution(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.New(url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))

	var userID int64
	require.NoError(t, db.QueryRowContext(ctx, "INSERT INTO users (name, email) VALUES ('carla', 'carla@example.com') RETURNING id").Scan(&userID))
	t.Cleanup(func() {
		db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", userID)
	})

	prefix := time.Now().Format("20060102150405.000000")
	tokens := map[string]time.Time{
		prefix + "-future": time.Now().Add(time.Hour),
		prefix + "-past":   time.Now().Add(-time.Hour),
	}
	for token, expiresAt := range tokens {
		_, err := db.ExecContext(ctx, "INSERT INTO access_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)", token, userID, expiresAt)
		require.NoError(t, err)
	}

	stores := database.NewStores(db)
	r := auth.NewResolver(stores.Users, sessions.NewCookieStore([]byte("test-secret")), "", 1, logging.Nop())

	testCases := []struct {
		name     string
		token    string
		resolved bool
	}{
		{name: "future expiry", token: prefix + "-future", resolved: true},
		{name: "past expiry", token: prefix + "-past", resolved: false},
		{name: "unknown token", token: prefix + "-missing", resolved: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := r.Resolve(ctx, tc.token)
			assert.Equal(t, tc.resolved, s.Resolved())
			if tc.resolved {
				assert.Equal(t, userID, s.User.ID)
				assert.Equal(t, "carla", s.User.Name)
				assert.Equal(t, "carla@example.com", s.User.Email)
			}
		})
	}
}
