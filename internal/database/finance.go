package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"foca/internal/model"
)

type FinanceStore interface {
	ListFinances(ctx context.Context, userID int64, r model.DateRange) ([]model.FinanceRecord, error)
	RecentFinances(ctx context.Context, userID int64, limit int) ([]model.FinanceRecord, error)
	InsertFinance(ctx context.Context, rec *model.FinanceRecord) error
	DeleteFinance(ctx context.Context, id, userID int64) (bool, error)
}

type PostgresFinanceStore struct {
	db DBTX
}

func NewFinanceStore(db DBTX) *PostgresFinanceStore {
	return &PostgresFinanceStore{db: db}
}

const financeColumns = "id, user_id, type, category, amount, description, transaction_date"

// ListFinances returns the user's transactions dated inside r, newest first.
func (s *PostgresFinanceStore) ListFinances(ctx context.Context, userID int64, r model.DateRange) ([]model.FinanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+financeColumns+" FROM finances WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3 ORDER BY transaction_date DESC, id DESC",
		userID, r.From.Format(model.DateLayout), r.To.Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanFinances(rows)
}

// RecentFinances returns up to limit of the user's latest transactions.
func (s *PostgresFinanceStore) RecentFinances(ctx context.Context, userID int64, limit int) ([]model.FinanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+financeColumns+" FROM finances WHERE user_id = $1 ORDER BY transaction_date DESC, id DESC LIMIT $2",
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanFinances(rows)
}

func (s *PostgresFinanceStore) InsertFinance(ctx context.Context, rec *model.FinanceRecord) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO finances (user_id, type, category, amount, description, transaction_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		rec.UserID, string(rec.Type), string(rec.Category), rec.Amount, rec.Description,
		rec.TransactionDate.Format(model.DateLayout)).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteFinance reports whether a row owned by userID was removed.
func (s *PostgresFinanceStore) DeleteFinance(ctx context.Context, id, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM finances WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

func scanFinances(rows *sql.Rows) ([]model.FinanceRecord, error) {
	defer rows.Close()

	out := []model.FinanceRecord{}
	for rows.Next() {
		var (
			rec      model.FinanceRecord
			typ, cat string
			amount   decimal.NullDecimal
			desc     sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &typ, &cat, &amount, &desc, &rec.TransactionDate.Time); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rec.Type = model.FinanceType(strings.ToLower(typ))
		rec.Category, _ = model.ParseFinanceCategory(cat)
		rec.Amount = amount.Decimal
		rec.Description = nullString(desc)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
