package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foca/internal/model"
)

type ScheduleStore interface {
	ListSchedule(ctx context.Context, userID int64, from, to time.Time) ([]model.ScheduleEvent, error)
	UpcomingSchedule(ctx context.Context, userID int64, after time.Time, limit int) ([]model.ScheduleEvent, error)
	InsertSchedule(ctx context.Context, ev *model.ScheduleEvent) error
	DeleteSchedule(ctx context.Context, id, userID int64) (bool, error)
	ListUnsynced(ctx context.Context, userID int64) ([]model.ScheduleEvent, error)
	MarkSynced(ctx context.Context, id, userID int64, googleEventID string) error
}

type PostgresScheduleStore struct {
	db DBTX
}

func NewScheduleStore(db DBTX) *PostgresScheduleStore {
	return &PostgresScheduleStore{db: db}
}

const scheduleColumns = "id, user_id, title, description, start_time, end_time, google_event_id, status, reminder_sent"

// ListSchedule returns events starting in [from, to), earliest first.
func (s *PostgresScheduleStore) ListSchedule(ctx context.Context, userID int64, from, to time.Time) ([]model.ScheduleEvent, error) {
	return s.query(ctx,
		"SELECT "+scheduleColumns+" FROM agendamento WHERE user_id = $1 AND start_time >= $2 AND start_time < $3 ORDER BY start_time ASC, id ASC",
		userID, from, to)
}

// UpcomingSchedule returns up to limit events starting after after.
func (s *PostgresScheduleStore) UpcomingSchedule(ctx context.Context, userID int64, after time.Time, limit int) ([]model.ScheduleEvent, error) {
	return s.query(ctx,
		"SELECT "+scheduleColumns+" FROM agendamento WHERE user_id = $1 AND start_time > $2 ORDER BY start_time ASC, id ASC LIMIT $3",
		userID, after, limit)
}

func (s *PostgresScheduleStore) InsertSchedule(ctx context.Context, ev *model.ScheduleEvent) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO agendamento (user_id, title, description, start_time, end_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		ev.UserID, ev.Title, ev.Description, ev.StartTime, ev.EndTime, ev.Status).Scan(&ev.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresScheduleStore) DeleteSchedule(ctx context.Context, id, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM agendamento WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected(res)
}

// ListUnsynced returns the user's events that no external calendar mirrors yet.
func (s *PostgresScheduleStore) ListUnsynced(ctx context.Context, userID int64) ([]model.ScheduleEvent, error) {
	return s.query(ctx,
		"SELECT "+scheduleColumns+" FROM agendamento WHERE user_id = $1 AND (google_event_id IS NULL OR google_event_id = '') ORDER BY start_time ASC, id ASC",
		userID)
}

// MarkSynced stores the external event id. An already synced event keeps its id.
func (s *PostgresScheduleStore) MarkSynced(ctx context.Context, id, userID int64, googleEventID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE agendamento SET google_event_id = $3 WHERE id = $1 AND user_id = $2 AND (google_event_id IS NULL OR google_event_id = '')",
		id, userID, googleEventID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresScheduleStore) query(ctx context.Context, q string, args ...any) ([]model.ScheduleEvent, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []model.ScheduleEvent{}
	for rows.Next() {
		var (
			ev                model.ScheduleEvent
			desc, gid, status sql.NullString
		)
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &desc, &ev.StartTime, &ev.EndTime, &gid, &status, &ev.ReminderSent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ev.Description = nullString(desc)
		ev.GoogleEventID = nullString(gid)
		ev.Status = nullString(status)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
