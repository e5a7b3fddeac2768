package aggregate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	kind  string
	group string
	value decimal.Decimal
	at    time.Time
}

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func rowSpec() Spec[row] {
	return Spec[row]{
		Value:  func(r row) decimal.Decimal { return r.value },
		Group:  func(r row) string { return r.group },
		Day:    func(r row) time.Time { return r.at },
		Series: func(r row) string { return r.kind },
	}
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 10, 0, 0, 0, time.UTC)
}

func TestReduce_Empty(t *testing.T) {
	res := Reduce([]row{}, rowSpec())

	assert.True(t, res.Total.IsZero())
	assert.NotNil(t, res.Breakdown)
	assert.NotNil(t, res.Series)
	assert.Empty(t, res.Breakdown)
	assert.Empty(t, res.Series)

	res = Reduce[row](nil, rowSpec())
	assert.Empty(t, cmp.Diff(Empty(), res, decimalComparer))
}

func TestReduce_SameDayWaterBucket(t *testing.T) {
	rows := []row{
		{kind: "water", group: "water", value: decimal.NewFromInt(300), at: day(10)},
		{kind: "water", group: "water", value: decimal.NewFromInt(250), at: day(10).Add(3 * time.Hour)},
	}

	res := Reduce(rows, rowSpec())

	require.Len(t, res.Series, 1)
	assert.Equal(t, "2025-01-10", res.Series[0].Date)
	assert.Equal(t, "10/01", res.Series[0].Label)
	assert.Equal(t, "550", res.Series[0].Value.String())
	assert.Equal(t, "550", res.Series[0].Values["water"].String())
}

func TestReduce_BreakdownPartitionsTotal(t *testing.T) {
	rows := []row{
		{kind: "expense", group: "Transporte", value: decimal.RequireFromString("150.50"), at: day(10)},
		{kind: "expense", group: "Lazer", value: decimal.RequireFromString("20.25"), at: day(11)},
		{kind: "expense", group: "Transporte", value: decimal.RequireFromString("9.99"), at: day(12)},
		{kind: "expense", group: "Outros", value: decimal.RequireFromString("0.01"), at: day(12)},
	}

	res := Reduce(rows, rowSpec())

	sum := decimal.Zero
	for _, s := range res.Breakdown {
		sum = sum.Add(s.Value)
	}
	assert.True(t, sum.Equal(res.Total), "breakdown %s != total %s", sum, res.Total)
	assert.Equal(t, "180.75", res.Total.String())
}

func TestReduce_OrderIndependent(t *testing.T) {
	rows := []row{
		{kind: "income", group: "Salario", value: decimal.NewFromInt(1000), at: day(1)},
		{kind: "expense", group: "Lazer", value: decimal.NewFromInt(50), at: day(2)},
		{kind: "expense", group: "Lazer", value: decimal.NewFromInt(50), at: day(3)},
		{kind: "expense", group: "Transporte", value: decimal.NewFromInt(100), at: day(3)},
		{kind: "income", group: "Extra", value: decimal.NewFromInt(100), at: day(5)},
	}

	want := Reduce(rows, rowSpec())

	shuffled := append([]row(nil), rows...)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := Reduce(shuffled, rowSpec())
		assert.Empty(t, cmp.Diff(want, got, decimalComparer))
	}
}

func TestReduce_BreakdownDeterministicOrder(t *testing.T) {
	rows := []row{
		{group: "b", value: decimal.NewFromInt(10), at: day(1)},
		{group: "a", value: decimal.NewFromInt(10), at: day(1)},
		{group: "c", value: decimal.NewFromInt(30), at: day(1)},
	}

	res := Reduce(rows, rowSpec())

	require.Len(t, res.Breakdown, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{res.Breakdown[0].Key, res.Breakdown[1].Key, res.Breakdown[2].Key})
}

func TestReduce_CountsWhenValueNil(t *testing.T) {
	rows := []row{{group: "exam", at: day(1)}, {group: "exam", at: day(2)}, {group: "study", at: day(2)}}

	res := Reduce(rows, Spec[row]{
		Group: func(r row) string { return r.group },
		Label: func(k string) string { return "L:" + k },
		Day:   func(r row) time.Time { return r.at },
	})

	assert.Equal(t, "3", res.Total.String())
	require.Len(t, res.Breakdown, 2)
	assert.Equal(t, "exam", res.Breakdown[0].Key)
	assert.Equal(t, "L:exam", res.Breakdown[0].Label)
	assert.Equal(t, "2", res.Breakdown[0].Value.String())
	require.Len(t, res.Series, 2)
	assert.Equal(t, "2", res.Series[1].Values[DefaultSeriesKey].String())
}

func TestReduce_SparseSeries(t *testing.T) {
	rows := []row{
		{kind: "expense", value: decimal.NewFromInt(1), at: day(1)},
		{kind: "expense", value: decimal.NewFromInt(1), at: day(5)},
	}

	res := Reduce(rows, rowSpec())

	require.Len(t, res.Series, 2)
	assert.Equal(t, "2025-01-01", res.Series[0].Date)
	assert.Equal(t, "2025-01-05", res.Series[1].Date)
}

func TestReduce_LocationCutsDays(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 01:00 UTC on the 11th is still the 10th in Sao Paulo.
	rows := []row{{kind: "water", value: decimal.NewFromInt(200), at: time.Date(2025, 1, 11, 1, 0, 0, 0, time.UTC)}}

	spec := rowSpec()
	spec.Location = loc
	res := Reduce(rows, spec)

	require.Len(t, res.Series, 1)
	assert.Equal(t, "2025-01-10", res.Series[0].Date)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50", Percent(decimal.NewFromInt(1250), decimal.NewFromInt(2500), 100).String())
	assert.Equal(t, "100", Percent(decimal.NewFromInt(3000), decimal.NewFromInt(2500), 100).String())
	assert.Equal(t, "120", Percent(decimal.NewFromInt(3000), decimal.NewFromInt(2500), 0).String())
	assert.True(t, Percent(decimal.NewFromInt(1), decimal.Zero, 100).IsZero())
}

func TestHelpers(t *testing.T) {
	rows := []row{{value: decimal.NewFromInt(2), kind: "a"}, {value: decimal.NewFromInt(3), kind: "b"}}

	assert.Equal(t, "5", Sum(rows, func(r row) decimal.Decimal { return r.value }).String())
	assert.Equal(t, 1, Count(rows, func(r row) bool { return r.kind == "a" }))
	assert.Len(t, Filter(rows, func(r row) bool { return r.kind == "b" }), 1)
	assert.NotNil(t, Filter([]row{}, func(r row) bool { return true }))
}
