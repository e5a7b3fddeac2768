package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/antonlindstrom/pgstore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foca/internal/auth"
	"foca/internal/calendar"
	"foca/internal/config"
	"foca/internal/database"
	"foca/internal/handler"
	"foca/internal/logging"
	"foca/internal/middleware"
	"foca/internal/page"
	"foca/internal/summary"
)

type Server struct {
	*gin.Engine
	db    *sql.DB
	store *pgstore.PGStore

	// Syncer is nil when the calendar integration is not configured.
	Syncer *calendar.Syncer
}

func New(cfg *config.Config, db *sql.DB, log logging.Logger) (*Server, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	r.Use(cors.New(corsConfig(cfg)))

	store, err := auth.NewStore(cfg.DatabaseURL, cfg.SessionMaxAge, []byte(cfg.SessionSecret))
	if err != nil {
		return nil, err
	}

	stores := database.NewStores(db)
	loc := cfg.Location()
	resolver := auth.NewResolver(stores.Users, store, cfg.BypassToken, cfg.BypassUserID, log)

	fin := summary.NewFinance(stores.Finances)
	hea := summary.NewHealth(stores.Health, loc)
	aca := summary.NewAcademic(stores.Academic, loc)
	sch := summary.NewSchedule(stores.Schedule, loc)
	dash := summary.NewDashboard(fin, hea, aca, sch, stores.Finances, log)

	pages := &handler.Pages{
		Dashboard: page.NewRegistry[summary.DashboardSummary]("dashboard", dash.Summarize, loc, log),
		Finances:  page.NewRegistry[summary.FinanceSummary]("finances", fin.Summarize, loc, log),
		Health:    page.NewRegistry[summary.HealthSummary]("health", hea.Summarize, loc, log),
		Academic:  page.NewRegistry[summary.AcademicSummary]("academic", aca.Summarize, loc, log),
		Schedule:  page.NewRegistry[summary.ScheduleSummary]("schedule", sch.Summarize, loc, log),
	}

	srv := &Server{Engine: r, db: db, store: store}

	var (
		authenticator auth.Authenticator
		syncer        handler.CalendarSyncer
	)
	if cfg.GoogleEnabled() {
		p := auth.NewGoogleProvider(cfg.ClientID, cfg.ClientSecret, cfg.ClientCallbackURL)
		authenticator = auth.NewGothicAuthenticator()
		srv.Syncer = calendar.NewSyncer(stores.Users, stores.Schedule, calendar.GoogleClient(stores.Users, p), loc, log)
		syncer = srv.Syncer
	} else {
		log.Info(context.Background(), "google calendar not configured, sync disabled")
	}

	h := handler.New(stores, store, cfg, resolver, authenticator, syncer, pages, log)
	h.Routes(r, middleware.Auth(resolver))

	return srv, nil
}

// Close stops the session cleanup and releases the session store.
func (s *Server) Close() {
	s.store.Close()
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	if cfg.FrontendURL != "" {
		c.AllowOrigins = []string{cfg.FrontendURL}
	} else {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return c
}
