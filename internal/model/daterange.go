package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("invalid date range")

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DefaultRange covers the last days days up to and including now.
func DefaultRange(now time.Time, days int) DateRange {
	return DateRange{From: StartOfDay(now.AddDate(0, 0, -days)), To: StartOfDay(now)}
}

// ParseDateRange reads from/to as DateLayout in loc. A missing bound keeps the
// matching bound of def.
func ParseDateRange(from, to string, loc *time.Location, def DateRange) (DateRange, error) {
	r := def
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: from: %v", ErrInvalidRange, err)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: to: %v", ErrInvalidRange, err)
		}
		r.To = t
	}
	if r.From.After(r.To) {
		return DateRange{}, fmt.Errorf("%w: from is after to", ErrInvalidRange)
	}
	return r, nil
}

// Bounds returns the half-open instant interval [start of From, start of To+1)
// in loc, for filtering timestamp columns.
func (r DateRange) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, loc)
	end := time.Date(r.To.Year(), r.To.Month(), r.To.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return start, end
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From string `json:"from"`
		To   string `json:"to"`
	}{r.From.Format(DateLayout), r.To.Format(DateLayout)})
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Date is a calendar day that serializes as DateLayout.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{StartOfDay(t)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
