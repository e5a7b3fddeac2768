// Package summary computes the per-page snapshots from the record stores.
package summary

import (
	"errors"
	"time"

	"foca/internal/model"
)

var ErrNoSession = errors.New("no resolved session")

type clock struct {
	loc *time.Location
	now func() time.Time
}

func newClock(loc *time.Location) clock {
	if loc == nil {
		loc = time.UTC
	}
	return clock{loc: loc, now: time.Now}
}

// today returns the bounds of the current calendar day in loc.
func (c clock) today() (time.Time, time.Time) {
	n := c.now().In(c.loc)
	return model.DateRange{From: n, To: n}.Bounds(c.loc)
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
