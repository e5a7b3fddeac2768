package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"foca/internal/auth"
	"foca/internal/config"
	"foca/internal/database"
	"foca/internal/logging"
	"foca/internal/middleware"
	"foca/internal/model"
	"foca/internal/page"
	"foca/internal/summary"
)

// SessionLoader resolves the session on page load.
type SessionLoader interface {
	Load(w http.ResponseWriter, r *http.Request) *model.Session
}

// CalendarSyncer pushes a user's schedule to the linked calendar.
type CalendarSyncer interface {
	SyncUser(ctx context.Context, userID int64) (int, error)
}

// Pages holds the per-user controllers of every page.
type Pages struct {
	Dashboard *page.Registry[summary.DashboardSummary]
	Finances  *page.Registry[summary.FinanceSummary]
	Health    *page.Registry[summary.HealthSummary]
	Academic  *page.Registry[summary.AcademicSummary]
	Schedule  *page.Registry[summary.ScheduleSummary]
}

func (p *Pages) drop(userID int64) {
	p.Dashboard.Drop(userID)
	p.Finances.Drop(userID)
	p.Health.Drop(userID)
	p.Academic.Drop(userID)
	p.Schedule.Drop(userID)
}

type Handler struct {
	stores   *database.Stores
	store    sessions.Store
	cfg      *config.Config
	sessions SessionLoader
	auth     auth.Authenticator
	syncer   CalendarSyncer
	pages    *Pages
	log      logging.Logger
}

// New builds the handler. authenticator and syncer are nil when the
// calendar integration is not configured.
func New(stores *database.Stores, store sessions.Store, cfg *config.Config, loader SessionLoader, authenticator auth.Authenticator, syncer CalendarSyncer, pages *Pages, log logging.Logger) *Handler {
	return &Handler{
		stores:   stores,
		store:    store,
		cfg:      cfg,
		sessions: loader,
		auth:     authenticator,
		syncer:   syncer,
		pages:    pages,
		log:      log,
	}
}

func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, struct{ Message string }{
		Message: "foca golang backend",
	})
}

// GetSession resolves the token of a page load.
func (h *Handler) GetSession(c *gin.Context) {
	s := h.sessions.Load(c.Writer, c.Request)
	if !s.Resolved() {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied", "loading": false})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	s := h.sessions.Load(c.Writer, c.Request)
	if s.Resolved() {
		h.pages.drop(s.UserID())
	}

	if err := auth.ClearSession(h.store, c.Writer, c.Request); err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to clear session", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Dashboard(c *gin.Context) {
	showPage(h, c, h.pages.Dashboard)
}

// showPage mounts the page controller: it applies the requested range, or
// refreshes the current one.
func showPage[T page.Snapshot](h *Handler, c *gin.Context, reg *page.Registry[T]) {
	ctx := c.Request.Context()
	ctrl := reg.Get(middleware.Session(c))

	from, to := c.Query("from"), c.Query("to")
	if from == "" && to == "" {
		c.JSON(http.StatusOK, ctrl.Refresh(ctx))
		return
	}

	r, err := model.ParseDateRange(from, to, h.cfg.Location(), ctrl.View().Range)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, ctrl.SetRange(ctx, r))
}

func (h *Handler) fail(c *gin.Context, status int, msg string, err error) {
	if err != nil {
		h.log.Error(c.Request.Context(), msg, "path", c.FullPath(), "request_id", middleware.RequestIDFrom(c), "err", err)
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
