package model

import "time"

type ScheduleEvent struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	GoogleEventID *string   `json:"google_event_id"`
	Status        *string   `json:"status"`
	ReminderSent  bool      `json:"reminder_sent"`
}

// Synced reports whether an external calendar mirrors the event.
func (e *ScheduleEvent) Synced() bool {
	return e.GoogleEventID != nil && *e.GoogleEventID != ""
}
