package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foca/internal/model"
)

type UserStore interface {
	FindUserByID(ctx context.Context, id int64) (*model.User, error)
	FindAccessToken(ctx context.Context, token string) (*model.AccessToken, error)
	SaveGoogleCredentials(ctx context.Context, c *model.GoogleCredentials) error
	FindGoogleCredentials(ctx context.Context, userID int64) (*model.GoogleCredentials, error)
	ListCalendarUsers(ctx context.Context) ([]int64, error)
}

type PostgresUserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	var email, phone sql.NullString

	err := s.db.QueryRowContext(ctx, "SELECT id, name, email, phone FROM users WHERE id = $1", id).
		Scan(&user.ID, &user.Name, &email, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No user found is not an error
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Email = email.String
	user.Phone = phone.String

	return user, nil
}

func (s *PostgresUserStore) FindAccessToken(ctx context.Context, token string) (*model.AccessToken, error) {
	t := &model.AccessToken{}

	err := s.db.QueryRowContext(ctx, "SELECT token, user_id, used, expires_at FROM access_tokens WHERE token = $1", token).
		Scan(&t.Token, &t.UserID, &t.Used, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (s *PostgresUserStore) SaveGoogleCredentials(ctx context.Context, c *model.GoogleCredentials) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO google_credentials (user_id, access_token, refresh_token, token_expiry, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET access_token = EXCLUDED.access_token,
		     refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), google_credentials.refresh_token),
		     token_expiry = EXCLUDED.token_expiry,
		     updated_at = NOW()`,
		c.UserID, c.AccessToken, c.RefreshToken, c.TokenExpiry)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindGoogleCredentials(ctx context.Context, userID int64) (*model.GoogleCredentials, error) {
	c := &model.GoogleCredentials{}

	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, access_token, refresh_token, token_expiry, updated_at FROM google_credentials WHERE user_id = $1", userID).
		Scan(&c.UserID, &c.AccessToken, &c.RefreshToken, &c.TokenExpiry, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (s *PostgresUserStore) ListCalendarUsers(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id FROM google_credentials ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
