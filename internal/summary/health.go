package summary

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"foca/internal/aggregate"
	"foca/internal/database"
	"foca/internal/model"
)

const (
	WaterGoalML    = 2500
	SleepGoalHours = 8

	defaultWorkoutItem = "Treino"
	defaultWorkoutUnit = "min"
)

type Workout struct {
	ID         int64           `json:"id"`
	Item       string          `json:"item"`
	Value      decimal.Decimal `json:"value"`
	Unit       string          `json:"unit"`
	RecordedAt time.Time       `json:"recorded_at"`
}

type HealthSummary struct {
	WaterToday   decimal.Decimal     `json:"water_today"`
	LastSleep    decimal.NullDecimal `json:"last_sleep"`
	LastWeight   decimal.NullDecimal `json:"last_weight"`
	WaterGoal    decimal.Decimal     `json:"water_goal"`
	SleepGoal    decimal.Decimal     `json:"sleep_goal"`
	WaterPercent decimal.Decimal     `json:"water_percent"`
	SleepPercent decimal.Decimal     `json:"sleep_percent"`

	WaterSeries  []aggregate.Bucket   `json:"water_series"`
	SleepSeries  []aggregate.Bucket   `json:"sleep_series"`
	Workouts     []Workout            `json:"workouts"`
	WorkoutCount int                  `json:"workout_count"`
	Weights      []model.HealthRecord `json:"weights"`

	Total     decimal.Decimal      `json:"total"`
	Breakdown []aggregate.Slice    `json:"breakdown"`
	Records   []model.HealthRecord `json:"records"`
}

func (s HealthSummary) Empty() bool {
	return len(s.Records) == 0 && s.WaterToday.IsZero() && !s.LastSleep.Valid && !s.LastWeight.Valid
}

type Health struct {
	store database.HealthStore
	clock
}

func NewHealth(store database.HealthStore, loc *time.Location) *Health {
	return &Health{store: store, clock: newClock(loc)}
}

func (h *Health) Summarize(ctx context.Context, s *model.Session, r model.DateRange) (HealthSummary, error) {
	if !s.Resolved() {
		return HealthSummary{}, ErrNoSession
	}
	userID := s.UserID()

	from, to := r.Bounds(h.loc)
	rows, err := h.store.ListHealth(ctx, userID, from, to)
	if err != nil {
		return HealthSummary{}, err
	}

	dayStart, dayEnd := h.today()
	water, err := h.store.SumHealth(ctx, userID, model.Water, dayStart, dayEnd)
	if err != nil {
		return HealthSummary{}, err
	}

	sleep, err := h.latest(ctx, userID, model.Sleep)
	if err != nil {
		return HealthSummary{}, err
	}
	weight, err := h.latest(ctx, userID, model.Weight)
	if err != nil {
		return HealthSummary{}, err
	}

	sum := h.reduce(rows)
	sum.WaterToday = water
	sum.LastSleep = sleep
	sum.LastWeight = weight
	sum.WaterPercent = aggregate.Percent(water, sum.WaterGoal, 100)
	sum.SleepPercent = aggregate.Percent(sleep.Decimal, sum.SleepGoal, 100)
	return sum, nil
}

func (h *Health) latest(ctx context.Context, userID int64, c model.HealthCategory) (decimal.NullDecimal, error) {
	rec, err := h.store.LatestHealth(ctx, userID, c)
	if err != nil || rec == nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(rec.Value), nil
}

func (h *Health) reduce(rows []model.HealthRecord) HealthSummary {
	of := func(c model.HealthCategory) []model.HealthRecord {
		return aggregate.Filter(rows, func(rec model.HealthRecord) bool { return rec.Category == c })
	}
	value := func(rec model.HealthRecord) decimal.Decimal { return rec.Value }
	day := func(rec model.HealthRecord) time.Time { return rec.RecordedAt }

	series := func(c model.HealthCategory) []aggregate.Bucket {
		return aggregate.Reduce(of(c), aggregate.Spec[model.HealthRecord]{Value: value, Day: day, Location: h.loc}).Series
	}

	counts := aggregate.Reduce(rows, aggregate.Spec[model.HealthRecord]{
		Group: func(rec model.HealthRecord) string { return string(rec.Category) },
		Label: func(k string) string { return model.HealthCategory(k).Label() },
	})

	workoutRows := of(model.Workout)
	workouts := make([]Workout, 0, len(workoutRows))
	for i := len(workoutRows) - 1; i >= 0; i-- {
		rec := workoutRows[i]
		workouts = append(workouts, Workout{
			ID:         rec.ID,
			Item:       orDefault(rec.Item, defaultWorkoutItem),
			Value:      rec.Value,
			Unit:       orDefault(rec.Unit, defaultWorkoutUnit),
			RecordedAt: rec.RecordedAt,
		})
	}

	weightRows := of(model.Weight)
	weights := make([]model.HealthRecord, 0, len(weightRows))
	for i := len(weightRows) - 1; i >= 0; i-- {
		weights = append(weights, weightRows[i])
	}

	return HealthSummary{
		WaterGoal:    decimal.NewFromInt(WaterGoalML),
		SleepGoal:    decimal.NewFromInt(SleepGoalHours),
		WaterPercent: decimal.Zero,
		SleepPercent: decimal.Zero,
		WaterToday:   decimal.Zero,
		WaterSeries:  series(model.Water),
		SleepSeries:  series(model.Sleep),
		Workouts:     workouts,
		WorkoutCount: len(workouts),
		Weights:      weights,
		Total:        counts.Total,
		Breakdown:    counts.Breakdown,
		Records:      rows,
	}
}
