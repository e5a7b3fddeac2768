// Package page keeps the per-user view state of each page: the selected date
// range, the last snapshot and whether it is still loading.
package page

import (
	"context"
	"sync"
	"time"

	"foca/internal/logging"
	"foca/internal/model"
)

type State string

const (
	Loading State = "loading"
	Ready   State = "ready"
	Empty   State = "empty"
)

// Snapshot is a page summary that knows when it has nothing to show.
type Snapshot interface {
	Empty() bool
}

// Loader computes a page snapshot for a session and range.
type Loader[T Snapshot] func(ctx context.Context, s *model.Session, r model.DateRange) (T, error)

type View[T any] struct {
	State     State           `json:"state"`
	Range     model.DateRange `json:"range"`
	Data      T               `json:"data"`
	Stale     bool            `json:"stale"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Controller serializes state changes for one user and page. Loads run
// outside the lock; a load that was superseded by a newer one is dropped.
type Controller[T Snapshot] struct {
	mu      sync.Mutex
	name    string
	session *model.Session
	load    Loader[T]
	log     logging.Logger
	now     func() time.Time

	gen    uint64
	loaded bool
	view   View[T]
}

func NewController[T Snapshot](name string, s *model.Session, r model.DateRange, load Loader[T], log logging.Logger) *Controller[T] {
	return &Controller[T]{
		name:    name,
		session: s,
		load:    load,
		log:     log,
		now:     time.Now,
		view:    View[T]{State: Loading, Range: r},
	}
}

func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetRange selects a new range and reloads.
func (c *Controller[T]) SetRange(ctx context.Context, r model.DateRange) View[T] {
	c.mu.Lock()
	c.view.Range = r
	c.view.State = Loading
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh reloads the snapshot for the current range. On failure the
// previous snapshot stays and is marked stale.
func (c *Controller[T]) Refresh(ctx context.Context) View[T] {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	s := c.session
	r := c.view.Range
	c.mu.Unlock()

	data, err := c.load(ctx, s, r)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return c.view
	}

	if err != nil {
		c.log.Error(ctx, "page refresh failed", "page", c.name, "user_id", s.UserID(), "err", err)
		c.view.Stale = true
		c.view.State = c.settled()
		return c.view
	}

	c.loaded = true
	c.view.Data = data
	c.view.Stale = false
	c.view.UpdatedAt = c.now()
	c.view.State = c.settled()
	return c.view
}

func (c *Controller[T]) setSession(s *model.Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Controller[T]) settled() State {
	if !c.loaded || c.view.Data.Empty() {
		return Empty
	}
	return Ready
}
