package summary

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"foca/internal/database"
	"foca/internal/logging"
	"foca/internal/model"
)

const RecentTransactions = 5

const (
	SectionFinance  = "finance"
	SectionHealth   = "health"
	SectionAcademic = "academic"
	SectionSchedule = "schedule"
	SectionRecent   = "recent"
)

type DashboardSummary struct {
	Finance  *FinanceSummary  `json:"finance"`
	Health   *HealthSummary   `json:"health"`
	Academic *AcademicSummary `json:"academic"`
	Schedule *ScheduleSummary `json:"schedule"`

	RecentTransactions []model.FinanceRecord `json:"recent_transactions"`

	// Errors names the sections that failed to load.
	Errors map[string]string `json:"errors,omitempty"`
}

func (d DashboardSummary) Empty() bool {
	return (d.Finance == nil || d.Finance.Empty()) &&
		(d.Health == nil || d.Health.Empty()) &&
		(d.Academic == nil || d.Academic.Empty()) &&
		(d.Schedule == nil || d.Schedule.Empty())
}

// Dashboard loads every section concurrently. A failing section is logged
// and left nil; the others are still returned.
type Dashboard struct {
	finance  *Finance
	health   *Health
	academic *Academic
	schedule *Schedule
	finances database.FinanceStore
	log      logging.Logger
}

func NewDashboard(f *Finance, h *Health, a *Academic, s *Schedule, finances database.FinanceStore, log logging.Logger) *Dashboard {
	return &Dashboard{
		finance:  f,
		health:   h,
		academic: a,
		schedule: s,
		finances: finances,
		log:      log,
	}
}

func (d *Dashboard) Summarize(ctx context.Context, s *model.Session, r model.DateRange) (DashboardSummary, error) {
	if !s.Resolved() {
		return DashboardSummary{}, ErrNoSession
	}

	var (
		out  DashboardSummary
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
		n    int
	)

	// Section errors are collected under mu instead of returned to g: Wait
	// keeps only the first one, and a failing section must not cancel the rest.
	run := func(section string, fn func() error) {
		n++
		g.Go(func() error {
			if err := fn(); err != nil {
				d.log.Error(ctx, "dashboard section failed", "section", section, "user_id", s.UserID(), "err", err)
				mu.Lock()
				if out.Errors == nil {
					out.Errors = map[string]string{}
				}
				out.Errors[section] = err.Error()
				errs = append(errs, fmt.Errorf("%s: %w", section, err))
				mu.Unlock()
			}
			return nil
		})
	}

	run(SectionFinance, func() error {
		v, err := d.finance.Summarize(ctx, s, r)
		if err == nil {
			mu.Lock()
			out.Finance = &v
			mu.Unlock()
		}
		return err
	})
	run(SectionHealth, func() error {
		v, err := d.health.Summarize(ctx, s, r)
		if err == nil {
			mu.Lock()
			out.Health = &v
			mu.Unlock()
		}
		return err
	})
	run(SectionAcademic, func() error {
		v, err := d.academic.Summarize(ctx, s, r)
		if err == nil {
			mu.Lock()
			out.Academic = &v
			mu.Unlock()
		}
		return err
	})
	run(SectionSchedule, func() error {
		v, err := d.schedule.Summarize(ctx, s, r)
		if err == nil {
			mu.Lock()
			out.Schedule = &v
			mu.Unlock()
		}
		return err
	})
	run(SectionRecent, func() error {
		v, err := d.finances.RecentFinances(ctx, s.UserID(), RecentTransactions)
		if err == nil {
			mu.Lock()
			out.RecentTransactions = v
			mu.Unlock()
		}
		return err
	})

	_ = g.Wait()

	if out.RecentTransactions == nil {
		out.RecentTransactions = []model.FinanceRecord{}
	}
	if len(errs) == n {
		return DashboardSummary{}, errors.Join(errs...)
	}
	return out, nil
}
