package summary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"foca/internal/aggregate"
	"foca/internal/database"
	"foca/internal/model"
)

type FinanceSummary struct {
	Income       decimal.Decimal       `json:"income"`
	Expenses     decimal.Decimal       `json:"expenses"`
	Balance      decimal.Decimal       `json:"balance"`
	Breakdown    []aggregate.Slice     `json:"breakdown"`
	Series       []aggregate.Bucket    `json:"series"`
	Transactions []model.FinanceRecord `json:"transactions"`
	Aggregate    aggregate.Result      `json:"aggregate"`
}

func (s FinanceSummary) Empty() bool {
	return len(s.Transactions) == 0
}

type Finance struct {
	store database.FinanceStore
}

func NewFinance(store database.FinanceStore) *Finance {
	return &Finance{store: store}
}

func (f *Finance) Summarize(ctx context.Context, s *model.Session, r model.DateRange) (FinanceSummary, error) {
	if !s.Resolved() {
		return FinanceSummary{}, ErrNoSession
	}

	rows, err := f.store.ListFinances(ctx, s.UserID(), r)
	if err != nil {
		return FinanceSummary{}, err
	}
	return f.reduce(rows), nil
}

func (f *Finance) reduce(rows []model.FinanceRecord) FinanceSummary {
	amount := func(rec model.FinanceRecord) decimal.Decimal { return rec.Amount }
	day := func(rec model.FinanceRecord) time.Time { return rec.TransactionDate.Time }

	all := aggregate.Reduce(rows, aggregate.Spec[model.FinanceRecord]{
		Value:    amount,
		Group:    func(rec model.FinanceRecord) string { return string(rec.Type) },
		Day:      day,
		Series:   func(rec model.FinanceRecord) string { return string(rec.Type) },
		// transaction dates are calendar days, not instants
		Location: time.UTC,
	})

	expenses := aggregate.Reduce(
		aggregate.Filter(rows, func(rec model.FinanceRecord) bool { return rec.Type == model.Expense }),
		aggregate.Spec[model.FinanceRecord]{
			Value: amount,
			Group: func(rec model.FinanceRecord) string { return string(rec.Category) },
		})

	income := aggregate.Sum(
		aggregate.Filter(rows, func(rec model.FinanceRecord) bool { return rec.Type == model.Income }),
		amount)

	return FinanceSummary{
		Income:       income,
		Expenses:     expenses.Total,
		Balance:      income.Sub(expenses.Total),
		Breakdown:    expenses.Breakdown,
		Series:       all.Series,
		Transactions: rows,
		Aggregate:    all,
	}
}
