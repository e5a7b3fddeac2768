package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HealthCategory is the normalized health metric kind. Stored rows may use
// any spelling listed in healthAliases.
type HealthCategory string

const (
	Water   HealthCategory = "water"
	Sleep   HealthCategory = "sleep"
	Weight  HealthCategory = "weight"
	Workout HealthCategory = "workout"
)

var HealthCategories = []HealthCategory{Water, Sleep, Weight, Workout}

var healthAliases = map[HealthCategory][]string{
	Water:   {"water", "agua", "água"},
	Sleep:   {"sleep", "sono"},
	Weight:  {"weight", "peso"},
	Workout: {"workout", "treino"},
}

var healthLabels = map[HealthCategory]string{
	Water:   "Água",
	Sleep:   "Sono",
	Weight:  "Peso",
	Workout: "Treino",
}

// ParseHealthCategory accepts any alias, case-insensitively.
func ParseHealthCategory(s string) (HealthCategory, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, aliases := range healthAliases {
		for _, a := range aliases {
			if s == a {
				return c, true
			}
		}
	}
	return "", false
}

// Aliases lists every lowercase spelling stored for c.
func (c HealthCategory) Aliases() []string {
	return healthAliases[c]
}

func (c HealthCategory) Label() string {
	if l, ok := healthLabels[c]; ok {
		return l
	}
	return "Outros"
}

// DefaultUnit is the unit shown when a row has none.
func (c HealthCategory) DefaultUnit() string {
	switch c {
	case Water:
		return "ml"
	case Sleep:
		return "h"
	case Weight:
		return "kg"
	default:
		return "min"
	}
}

type HealthRecord struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Category    HealthCategory  `json:"category"`
	Value       decimal.Decimal `json:"value"`
	Item        *string         `json:"item"`
	Description *string         `json:"description"`
	Unit        *string         `json:"unit"`
	RecordedAt  time.Time       `json:"recorded_at"`
}
