// Package aggregate reduces record slices into the totals, breakdowns and
// day-bucketed series every page draws.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"foca/internal/model"
)

// LabelLayout is the short day label used on chart axes.
const LabelLayout = "02/01"

// DefaultSeriesKey is the sub-series used when Spec.Series is nil.
const DefaultSeriesKey = "value"

// Slice is one group of a breakdown.
type Slice struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Bucket holds the rows of one calendar day.
type Bucket struct {
	Date   string                     `json:"date"`
	Label  string                     `json:"label"`
	Value  decimal.Decimal            `json:"value"`
	Values map[string]decimal.Decimal `json:"values"`
}

type Result struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []Slice         `json:"breakdown"`
	Series    []Bucket        `json:"series"`
}

// Spec tells Reduce how to read a row.
type Spec[T any] struct {
	// Value returns the row amount. Nil counts rows.
	Value func(T) decimal.Decimal
	// Group returns the breakdown key. Nil skips the breakdown.
	Group func(T) string
	// Label names a group key; nil uses the key itself.
	Label func(string) string
	// Day returns the instant bucketed by calendar day. Nil skips the series.
	Day func(T) time.Time
	// Series splits a day bucket into sub-values (income/expense).
	Series func(T) string
	// Location is the zone days are cut in; nil means UTC.
	Location *time.Location
}

// Empty is the result of reducing no rows.
func Empty() Result {
	return Result{Total: decimal.Zero, Breakdown: []Slice{}, Series: []Bucket{}}
}

// Reduce computes total, breakdown and series in one pass.
func Reduce[T any](rows []T, spec Spec[T]) Result {
	res := Empty()
	loc := spec.Location
	if loc == nil {
		loc = time.UTC
	}

	groups := map[string]decimal.Decimal{}
	days := map[string]*Bucket{}

	for _, row := range rows {
		v := decimal.NewFromInt(1)
		if spec.Value != nil {
			v = spec.Value(row)
		}
		res.Total = res.Total.Add(v)

		if spec.Group != nil {
			k := spec.Group(row)
			groups[k] = groups[k].Add(v)
		}

		if spec.Day != nil {
			d := spec.Day(row).In(loc)
			key := d.Format(model.DateLayout)
			b, ok := days[key]
			if !ok {
				b = &Bucket{Date: key, Label: d.Format(LabelLayout), Value: decimal.Zero, Values: map[string]decimal.Decimal{}}
				days[key] = b
			}
			sub := DefaultSeriesKey
			if spec.Series != nil {
				sub = spec.Series(row)
			}
			b.Value = b.Value.Add(v)
			b.Values[sub] = b.Values[sub].Add(v)
		}
	}

	for k, v := range groups {
		label := k
		if spec.Label != nil {
			label = spec.Label(k)
		}
		res.Breakdown = append(res.Breakdown, Slice{Key: k, Label: label, Value: v})
	}
	SortBreakdown(res.Breakdown)

	for _, b := range days {
		res.Series = append(res.Series, *b)
	}
	sort.Slice(res.Series, func(i, j int) bool { return res.Series[i].Date < res.Series[j].Date })

	return res
}

// SortBreakdown orders by value descending, then key ascending.
func SortBreakdown(s []Slice) {
	sort.Slice(s, func(i, j int) bool {
		if c := s[i].Value.Cmp(s[j].Value); c != 0 {
			return c > 0
		}
		return s[i].Key < s[j].Key
	})
}

// Sum adds v over rows.
func Sum[T any](rows []T, v func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(v(r))
	}
	return total
}

// Count returns how many rows match keep.
func Count[T any](rows []T, keep func(T) bool) int {
	n := 0
	for _, r := range rows {
		if keep(r) {
			n++
		}
	}
	return n
}

// Filter returns the rows matching keep. The result is never nil.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Percent returns part/whole*100 rounded to one decimal, capped at limit when
// limit is positive. A zero whole yields zero.
func Percent(part, whole decimal.Decimal, limit int64) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	p := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1)
	if limit > 0 && p.GreaterThan(decimal.NewFromInt(limit)) {
		return decimal.NewFromInt(limit)
	}
	return p
}
