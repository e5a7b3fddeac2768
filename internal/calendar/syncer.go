// Package calendar pushes local schedule events to the user's Google Calendar
// and stores the returned event id as the sync marker.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/markbates/goth"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"foca/internal/auth"
	"foca/internal/database"
	"foca/internal/logging"
	"foca/internal/model"
)

const primaryCalendar = "primary"

var ErrNotLinked = errors.New("calendar not linked")

// eventNamespace derives stable Google event ids, so a retried insert of the
// same local event conflicts instead of duplicating it.
var eventNamespace = uuid.MustParse("6f1c1f5e-3d0b-4c55-9a0e-5b2f3c7d9e10")

// Inserter creates events in a remote calendar and returns their id.
type Inserter interface {
	Insert(ctx context.Context, ev *gcal.Event) (string, error)
}

// ClientFunc builds an Inserter authorized with the user's credentials.
type ClientFunc func(ctx context.Context, creds *model.GoogleCredentials) (Inserter, error)

type Syncer struct {
	users     database.UserStore
	schedule  database.ScheduleStore
	newClient ClientFunc
	loc       *time.Location
	log       logging.Logger
}

func NewSyncer(users database.UserStore, schedule database.ScheduleStore, newClient ClientFunc, loc *time.Location, log logging.Logger) *Syncer {
	if loc == nil {
		loc = time.UTC
	}
	return &Syncer{users: users, schedule: schedule, newClient: newClient, loc: loc, log: log}
}

// GoogleClient returns a ClientFunc backed by the Calendar API. Expired
// tokens are refreshed through p and persisted.
func GoogleClient(users database.UserStore, p goth.Provider) ClientFunc {
	return func(ctx context.Context, creds *model.GoogleCredentials) (Inserter, error) {
		src := oauth2.ReuseTokenSource(nil, auth.NewCredentialSource(ctx, creds, users, p))
		client := oauth2.NewClient(ctx, src)
		svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
		if err != nil {
			return nil, fmt.Errorf("calendar service: %w", err)
		}
		return &googleCalendar{svc: svc}, nil
	}
}

type googleCalendar struct {
	svc *gcal.Service
}

func (g *googleCalendar) Insert(ctx context.Context, ev *gcal.Event) (string, error) {
	created, err := g.svc.Events.Insert(primaryCalendar, ev).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

// SyncUser pushes every unsynced event of the user and returns how many were
// marked. A failing event does not stop the others.
func (s *Syncer) SyncUser(ctx context.Context, userID int64) (int, error) {
	creds, err := s.users.FindGoogleCredentials(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, ErrNotLinked
		}
		return 0, err
	}

	events, err := s.schedule.ListUnsynced(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	client, err := s.newClient(ctx, creds)
	if err != nil {
		return 0, err
	}

	var (
		synced int
		errs   []error
	)
	for i := range events {
		ev := &events[i]
		id, err := client.Insert(ctx, s.toGoogle(ev))
		if isConflict(err) {
			id, err = EventID(ev), nil
		}
		if err != nil {
			s.log.Warn(ctx, "calendar insert failed", "user_id", userID, "event_id", ev.ID, "err", err)
			errs = append(errs, fmt.Errorf("event %d: %w", ev.ID, err))
			continue
		}
		if err := s.schedule.MarkSynced(ctx, ev.ID, userID, id); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", ev.ID, err))
			continue
		}
		synced++
	}

	return synced, errors.Join(errs...)
}

// Run syncs every linked user on each tick until ctx is done.
func (s *Syncer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.syncAll(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Syncer) syncAll(ctx context.Context) {
	ids, err := s.users.ListCalendarUsers(ctx)
	if err != nil {
		s.log.Error(ctx, "list calendar users failed", "err", err)
		return
	}
	for _, id := range ids {
		n, err := s.SyncUser(ctx, id)
		if err != nil {
			s.log.Error(ctx, "calendar sync failed", "user_id", id, "err", err)
		}
		if n > 0 {
			s.log.Info(ctx, "calendar synced", "user_id", id, "events", n)
		}
	}
}

func (s *Syncer) toGoogle(ev *model.ScheduleEvent) *gcal.Event {
	out := &gcal.Event{
		Id:      EventID(ev),
		Summary: ev.Title,
		Start: &gcal.EventDateTime{
			DateTime: ev.StartTime.In(s.loc).Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: ev.EndTime.In(s.loc).Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
	}
	if ev.Description != nil {
		out.Description = *ev.Description
	}
	return out
}

// EventID is the Google event id of a local event. Google accepts lowercase
// hex, so hyphens are dropped.
func EventID(ev *model.ScheduleEvent) string {
	id := uuid.NewSHA1(eventNamespace, []byte(fmt.Sprintf("%d:%d", ev.UserID, ev.ID)))
	return strings.ReplaceAll(id.String(), "-", "")
}

func isConflict(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusConflict
}
