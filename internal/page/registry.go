package page

import (
	"context"
	"sync"
	"time"

	"foca/internal/logging"
	"foca/internal/model"
)

// DefaultRangeDays is the range a page opens with.
const DefaultRangeDays = 30

// Registry holds one controller per user for a page.
type Registry[T Snapshot] struct {
	mu          sync.Mutex
	name        string
	load        Loader[T]
	loc         *time.Location
	log         logging.Logger
	now         func() time.Time
	controllers map[int64]*Controller[T]
}

func NewRegistry[T Snapshot](name string, load Loader[T], loc *time.Location, log logging.Logger) *Registry[T] {
	if loc == nil {
		loc = time.UTC
	}
	return &Registry[T]{
		name:        name,
		load:        load,
		loc:         loc,
		log:         log,
		now:         time.Now,
		controllers: map[int64]*Controller[T]{},
	}
}

// Get returns the controller of the session user, creating it with the
// default range on first use.
func (r *Registry[T]) Get(s *model.Session) *Controller[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := s.UserID()
	if c, ok := r.controllers[id]; ok {
		c.setSession(s)
		return c
	}

	c := NewController(r.name, s, model.DefaultRange(r.now().In(r.loc), DefaultRangeDays), r.load, r.log)
	c.now = r.now
	r.controllers[id] = c
	return c
}

// Drop forgets the user's controller, as when its session is cleared.
func (r *Registry[T]) Drop(userID int64) {
	r.mu.Lock()
	delete(r.controllers, userID)
	r.mu.Unlock()
}

// Poll calls fn every interval until ctx is done.
func Poll(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(ctx)
		}
	}
}
