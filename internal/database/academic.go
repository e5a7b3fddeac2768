package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foca/internal/model"
)

type AcademicStore interface {
	ListAcademic(ctx context.Context, userID int64, from, to time.Time) ([]model.AcademicItem, error)
	InsertAcademic(ctx context.Context, item *model.AcademicItem) error
	DeleteAcademic(ctx context.Context, id, userID int64) (bool, error)
}

type PostgresAcademicStore struct {
	db DBTX
}

func NewAcademicStore(db DBTX) *PostgresAcademicStore {
	return &PostgresAcademicStore{db: db}
}

// ListAcademic returns items created in [from, to), newest first.
func (s *PostgresAcademicStore) ListAcademic(ctx context.Context, userID int64, from, to time.Time) ([]model.AcademicItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, doc_name, summary, tags, created_at FROM academic
		 WHERE user_id = $1 AND created_at >= $2 AND created_at < $3 ORDER BY created_at DESC, id DESC`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []model.AcademicItem{}
	for rows.Next() {
		var (
			item    model.AcademicItem
			summary sql.NullString
			tags    sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.DocName, &summary, &tags, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.Summary = nullString(summary)
		item.Tag, _ = model.ParseAcademicTag(tags.String)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (s *PostgresAcademicStore) InsertAcademic(ctx context.Context, item *model.AcademicItem) error {
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO academic (user_id, doc_name, summary, tags) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		item.UserID, item.DocName, item.Summary, string(item.Tag)).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresAcademicStore) DeleteAcademic(ctx context.Context, id, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM academic WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}
