package summary

import (
	"context"
	"time"

	"foca/internal/aggregate"
	"foca/internal/database"
	"foca/internal/model"
)

const UpcomingLimit = 3

const (
	syncedKey = "synced"
	localKey  = "local"
)

var syncLabels = map[string]string{
	syncedKey: "Sincronizado",
	localKey:  "Local",
}

type ScheduleSummary struct {
	Total     int                   `json:"total"`
	Breakdown []aggregate.Slice     `json:"breakdown"`
	Series    []aggregate.Bucket    `json:"series"`
	Today     int                   `json:"today"`
	Synced    int                   `json:"synced"`
	Upcoming  []model.ScheduleEvent `json:"upcoming"`
	Events    []model.ScheduleEvent `json:"events"`
}

func (s ScheduleSummary) Empty() bool {
	return len(s.Events) == 0 && len(s.Upcoming) == 0 && s.Today == 0
}

type Schedule struct {
	store database.ScheduleStore
	clock
}

func NewSchedule(store database.ScheduleStore, loc *time.Location) *Schedule {
	return &Schedule{store: store, clock: newClock(loc)}
}

func (sc *Schedule) Summarize(ctx context.Context, s *model.Session, r model.DateRange) (ScheduleSummary, error) {
	if !s.Resolved() {
		return ScheduleSummary{}, ErrNoSession
	}
	userID := s.UserID()

	from, to := r.Bounds(sc.loc)
	rows, err := sc.store.ListSchedule(ctx, userID, from, to)
	if err != nil {
		return ScheduleSummary{}, err
	}

	dayStart, dayEnd := sc.today()
	today, err := sc.store.ListSchedule(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return ScheduleSummary{}, err
	}

	upcoming, err := sc.store.UpcomingSchedule(ctx, userID, sc.now(), UpcomingLimit)
	if err != nil {
		return ScheduleSummary{}, err
	}

	res := aggregate.Reduce(rows, aggregate.Spec[model.ScheduleEvent]{
		Group: func(ev model.ScheduleEvent) string {
			if ev.Synced() {
				return syncedKey
			}
			return localKey
		},
		Label:    func(k string) string { return syncLabels[k] },
		Day:      func(ev model.ScheduleEvent) time.Time { return ev.StartTime },
		Location: sc.loc,
	})

	return ScheduleSummary{
		Total:     int(res.Total.IntPart()),
		Breakdown: res.Breakdown,
		Series:    res.Series,
		Today:     len(today),
		Synced:    aggregate.Count(rows, func(ev model.ScheduleEvent) bool { return ev.Synced() }),
		Upcoming:  upcoming,
		Events:    rows,
	}, nil
}
