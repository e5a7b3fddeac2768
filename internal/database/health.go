package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"foca/internal/model"
)

type HealthStore interface {
	ListHealth(ctx context.Context, userID int64, from, to time.Time) ([]model.HealthRecord, error)
	SumHealth(ctx context.Context, userID int64, c model.HealthCategory, from, to time.Time) (decimal.Decimal, error)
	LatestHealth(ctx context.Context, userID int64, c model.HealthCategory) (*model.HealthRecord, error)
	InsertHealth(ctx context.Context, rec *model.HealthRecord) error
	DeleteHealth(ctx context.Context, id, userID int64) (bool, error)
}

type PostgresHealthStore struct {
	db DBTX
}

func NewHealthStore(db DBTX) *PostgresHealthStore {
	return &PostgresHealthStore{db: db}
}

const healthColumns = "id, user_id, category, value, item, description, unit, calendario"

// ListHealth returns rows recorded in [from, to), oldest first.
func (s *PostgresHealthStore) ListHealth(ctx context.Context, userID int64, from, to time.Time) ([]model.HealthRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+healthColumns+" FROM health WHERE user_id = $1 AND calendario >= $2 AND calendario < $3 ORDER BY calendario ASC, id ASC",
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []model.HealthRecord{}
	for rows.Next() {
		rec, err := scanHealth(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// SumHealth adds the values of category c recorded in [from, to). Every
// stored spelling of the category counts.
func (s *PostgresHealthStore) SumHealth(ctx context.Context, userID int64, c model.HealthCategory, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(value), 0) FROM health WHERE user_id = $1 AND lower(category) = ANY($2) AND calendario >= $3 AND calendario < $4",
		userID, pq.Array(c.Aliases()), from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("db error: %w", err)
	}
	return sum.Decimal, nil
}

// LatestHealth returns the newest row of category c regardless of date, or
// nil when the user never recorded one.
func (s *PostgresHealthStore) LatestHealth(ctx context.Context, userID int64, c model.HealthCategory) (*model.HealthRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+healthColumns+" FROM health WHERE user_id = $1 AND lower(category) = ANY($2) ORDER BY calendario DESC, id DESC LIMIT 1",
		userID, pq.Array(c.Aliases()))
	rec, err := scanHealth(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *PostgresHealthStore) InsertHealth(ctx context.Context, rec *model.HealthRecord) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO health (user_id, category, value, item, description, unit, calendario)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		rec.UserID, string(rec.Category), rec.Value, rec.Item, rec.Description, rec.Unit, rec.RecordedAt).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresHealthStore) DeleteHealth(ctx context.Context, id, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM health WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHealth(sc scanner) (*model.HealthRecord, error) {
	var (
		rec              model.HealthRecord
		cat              string
		value            decimal.NullDecimal
		item, desc, unit sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.UserID, &cat, &value, &item, &desc, &unit, &rec.RecordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if c, ok := model.ParseHealthCategory(cat); ok {
		rec.Category = c
	} else {
		rec.Category = model.HealthCategory(strings.ToLower(cat))
	}
	rec.Value = value.Decimal
	rec.Item = nullString(item)
	rec.Description = nullString(desc)
	rec.Unit = nullString(unit)
	return &rec, nil
}
