package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/markbates/goth/gothic"
)

// ErrMissingEnv is returned when a required environment variable is absent.
var ErrMissingEnv = errors.New("missing required environment variables")

const (
	defaultAddr              = ":9999"
	defaultTimezone          = "America/Sao_Paulo"
	defaultBypassUserID      = 1
	defaultSchedulePollSecs  = 30
	minSchedulePollSecs      = 5
	maxSchedulePollSecs      = 60
	defaultSessionMaxAgeHrs  = 12
	defaultCalendarSyncMins  = 5
	legacyDatabaseURLEnvName = "VITE_DATABASE_URL"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	SessionSecret string
	FrontendURL   string
	LogLevel      string

	// BypassToken resolves to the built-in administrative identity when set.
	// Empty disables the bypass entirely.
	BypassToken  string
	BypassUserID int64

	Timezone             string
	SchedulePollInterval time.Duration
	SessionMaxAge        time.Duration

	ClientID             string
	ClientSecret         string
	ClientCallbackURL    string
	CalendarSyncInterval time.Duration

	location *time.Location
}

// Load reads an optional .env file and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv(legacyDatabaseURLEnvName)
	}

	cfg := &Config{
		Addr:              envOr("ADDR", defaultAddr),
		DatabaseURL:       dbURL,
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		FrontendURL:       os.Getenv("FRONTEND_URL"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		BypassToken:       os.Getenv("ADMIN_BYPASS_TOKEN"),
		Timezone:          envOr("TZ_NAME", defaultTimezone),
		ClientID:          os.Getenv("CLIENT_ID"),
		ClientSecret:      os.Getenv("CLIENT_SECRET"),
		ClientCallbackURL: os.Getenv("CLIENT_CALLBACK_URL"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	bypassUserID, err := envInt("ADMIN_BYPASS_USER_ID", defaultBypassUserID)
	if err != nil {
		return nil, err
	}
	cfg.BypassUserID = int64(bypassUserID)

	pollSecs, err := envInt("SCHEDULE_POLL_SECONDS", defaultSchedulePollSecs)
	if err != nil {
		return nil, err
	}
	cfg.SchedulePollInterval = time.Duration(clamp(pollSecs, minSchedulePollSecs, maxSchedulePollSecs)) * time.Second

	maxAgeHrs, err := envInt("SESSION_MAX_AGE_HOURS", defaultSessionMaxAgeHrs)
	if err != nil {
		return nil, err
	}
	cfg.SessionMaxAge = time.Duration(maxAgeHrs) * time.Hour

	syncMins, err := envInt("CALENDAR_SYNC_MINUTES", defaultCalendarSyncMins)
	if err != nil {
		return nil, err
	}
	cfg.CalendarSyncInterval = time.Duration(syncMins) * time.Minute

	if err := cfg.validateGoogle(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if cfg.GoogleEnabled() {
		gothic.Store = sessions.NewCookieStore([]byte(cfg.SessionSecret))
	}

	return cfg, nil
}

// GoogleEnabled reports whether the calendar link flow is configured.
func (c *Config) GoogleEnabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.ClientCallbackURL != ""
}

// Location is the zone used to cut records into calendar days.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) validateGoogle() error {
	set := 0
	for _, v := range []string{c.ClientID, c.ClientSecret, c.ClientCallbackURL} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("%w: CLIENT_ID, CLIENT_SECRET and CLIENT_CALLBACK_URL must be set together", ErrMissingEnv)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
