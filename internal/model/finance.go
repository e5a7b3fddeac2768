package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type FinanceType string

const (
	Income  FinanceType = "income"
	Expense FinanceType = "expense"
)

func (t FinanceType) Valid() bool {
	return t == Income || t == Expense
}

type FinanceCategory string

const (
	CategoryLeisure       FinanceCategory = "Lazer"
	CategoryFood          FinanceCategory = "Alimentação"
	CategoryFixedCost     FinanceCategory = "Despesa fixa"
	CategoryVariableCost  FinanceCategory = "Despesa variável"
	CategoryTransport     FinanceCategory = "Transporte"
	CategoryHealth        FinanceCategory = "Saúde"
	CategoryEducation     FinanceCategory = "Educação"
	CategoryInvestment    FinanceCategory = "Investimento"
	CategoryOtherFinances FinanceCategory = "Outros"
)

var FinanceCategories = []FinanceCategory{
	CategoryLeisure,
	CategoryFood,
	CategoryFixedCost,
	CategoryVariableCost,
	CategoryTransport,
	CategoryHealth,
	CategoryEducation,
	CategoryInvestment,
	CategoryOtherFinances,
}

// ParseFinanceCategory matches case-insensitively and falls back to Outros.
func ParseFinanceCategory(s string) (FinanceCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range FinanceCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return CategoryOtherFinances, false
}

type FinanceRecord struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Type            FinanceType     `json:"type"`
	Category        FinanceCategory `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description"`
	TransactionDate Date            `json:"transaction_date"`
}
