package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"foca/internal/calendar"
	"foca/internal/middleware"
	"foca/internal/model"
	"foca/internal/page"
	"foca/internal/summary"
)

const clockLayout = "15:04"

type scheduleRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Date        string     `json:"date"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Status      *string    `json:"status"`
}

var errInvalidTimes = errors.New("end must be after start")

// times accepts either explicit instants or a day with HH:MM bounds in loc.
func (r scheduleRequest) times(loc *time.Location) (time.Time, time.Time, error) {
	var start, end time.Time
	if r.StartTime != nil && r.EndTime != nil {
		start, end = *r.StartTime, *r.EndTime
	} else {
		var err error
		start, err = time.ParseInLocation(model.DateLayout+" "+clockLayout, r.Date+" "+r.Start, loc)
		if err != nil {
			return start, end, errors.New("date and start (HH:MM) are required")
		}
		end, err = time.ParseInLocation(model.DateLayout+" "+clockLayout, r.Date+" "+r.End, loc)
		if err != nil {
			return start, end, errors.New("end (HH:MM) is required")
		}
	}
	if !end.After(start) {
		return start, end, errInvalidTimes
	}
	return start, end, nil
}

func (h *Handler) Schedule(c *gin.Context) {
	showPage(h, c, h.pages.Schedule)
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	start, end, err := req.times(h.cfg.Location())
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	s := middleware.Session(c)
	ev := &model.ScheduleEvent{
		UserID:      s.UserID(),
		Title:       strings.TrimSpace(req.Title),
		Description: blankToNil(req.Description),
		StartTime:   start,
		EndTime:     end,
		Status:      blankToNil(req.Status),
	}

	if err := h.stores.Schedule.InsertSchedule(c.Request.Context(), ev); err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to save event", err)
		return
	}

	view := h.pages.Schedule.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"record": ev, "view": view})
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.fail(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	s := middleware.Session(c)
	deleted, err := h.stores.Schedule.DeleteSchedule(c.Request.Context(), id, s.UserID())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to delete event", err)
		return
	}

	view := h.pages.Schedule.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "view": view})
}

// ScheduleStream sends the schedule view on connect and again every poll
// interval until the client goes away.
func (h *Handler) ScheduleStream(c *gin.Context) {
	ctx := c.Request.Context()
	ctrl := h.pages.Schedule.Get(middleware.Session(c))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	views := make(chan page.View[summary.ScheduleSummary], 1)
	views <- ctrl.Refresh(ctx)

	go page.Poll(ctx, h.cfg.SchedulePollInterval, func(ctx context.Context) {
		v := ctrl.Refresh(ctx)
		select {
		case views <- v:
		case <-ctx.Done():
		}
	})

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-views:
			c.SSEvent("view", v)
			return true
		}
	})
}

// SyncSchedule pushes unsynced events to the linked Google Calendar.
func (h *Handler) SyncSchedule(c *gin.Context) {
	if h.syncer == nil {
		h.fail(c, http.StatusServiceUnavailable, "calendar sync is not configured", nil)
		return
	}

	s := middleware.Session(c)
	n, err := h.syncer.SyncUser(c.Request.Context(), s.UserID())
	if errors.Is(err, calendar.ErrNotLinked) {
		h.fail(c, http.StatusConflict, "calendar not linked", nil)
		return
	}
	if err != nil && n == 0 {
		h.fail(c, http.StatusBadGateway, "calendar sync failed", err)
		return
	}
	if err != nil {
		h.log.Warn(c.Request.Context(), "calendar sync incomplete", "user_id", s.UserID(), "synced", n, "err", err)
	}

	view := h.pages.Schedule.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"synced": n, "view": view})
}
