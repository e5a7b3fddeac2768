package page

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foca/internal/logging"
	"foca/internal/model"
)

type snapshot struct {
	Rows []int
}

func (s snapshot) Empty() bool {
	return len(s.Rows) == 0
}

var (
	now     = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	session = &model.Session{User: &model.User{ID: 1}}
	week    = model.DefaultRange(now, 7)
)

func static(rows []int, err error) Loader[snapshot] {
	return func(context.Context, *model.Session, model.DateRange) (snapshot, error) {
		return snapshot{Rows: rows}, err
	}
}

func TestController_StartsLoading(t *testing.T) {
	c := NewController("finances", session, week, static(nil, nil), logging.Nop())

	v := c.View()
	assert.Equal(t, Loading, v.State)
	assert.Equal(t, week, v.Range)
}

func TestController_RefreshStates(t *testing.T) {
	testCases := []struct {
		name     string
		rows     []int
		expected State
	}{
		{name: "with rows", rows: []int{1}, expected: Ready},
		{name: "no rows", rows: nil, expected: Empty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController("finances", session, week, static(tc.rows, nil), logging.Nop())
			c.now = func() time.Time { return now }

			v := c.Refresh(context.Background())
			assert.Equal(t, tc.expected, v.State)
			assert.False(t, v.Stale)
			assert.Equal(t, now, v.UpdatedAt)
		})
	}
}

func TestController_FailureKeepsPreviousSnapshot(t *testing.T) {
	fail := false
	load := func(context.Context, *model.Session, model.DateRange) (snapshot, error) {
		if fail {
			return snapshot{}, errors.New("db error: timeout")
		}
		return snapshot{Rows: []int{1, 2}}, nil
	}
	c := NewController[snapshot]("finances", session, week, load, logging.Nop())

	v := c.Refresh(context.Background())
	require.Equal(t, Ready, v.State)

	fail = true
	v = c.Refresh(context.Background())
	assert.Equal(t, Ready, v.State)
	assert.True(t, v.Stale)
	assert.Equal(t, []int{1, 2}, v.Data.Rows)
}

func TestController_FailureWithoutSnapshotIsEmpty(t *testing.T) {
	c := NewController("health", session, week, static(nil, errors.New("down")), logging.Nop())

	v := c.Refresh(context.Background())
	assert.Equal(t, Empty, v.State)
	assert.True(t, v.Stale)
}

func TestController_SetRangeReloads(t *testing.T) {
	var got model.DateRange
	load := func(_ context.Context, _ *model.Session, r model.DateRange) (snapshot, error) {
		got = r
		return snapshot{Rows: []int{1}}, nil
	}
	c := NewController[snapshot]("academic", session, week, load, logging.Nop())

	month := model.DefaultRange(now, 30)
	v := c.SetRange(context.Background(), month)
	assert.Equal(t, month, got)
	assert.Equal(t, month, v.Range)
	assert.Equal(t, Ready, v.State)
}

func TestController_DiscardsSupersededRefresh(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32

	load := func(context.Context, *model.Session, model.DateRange) (snapshot, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return snapshot{Rows: []int{1}}, nil
		}
		return snapshot{Rows: []int{2, 2}}, nil
	}
	c := NewController[snapshot]("schedule", session, week, load, logging.Nop())

	done := make(chan View[snapshot])
	go func() { done <- c.Refresh(context.Background()) }()
	<-started

	latest := c.Refresh(context.Background())
	assert.Equal(t, []int{2, 2}, latest.Data.Rows)

	close(release)
	<-done

	assert.Equal(t, []int{2, 2}, c.View().Data.Rows)
}

func TestRegistry_OneControllerPerUser(t *testing.T) {
	r := NewRegistry("finances", static([]int{1}, nil), time.UTC, logging.Nop())
	r.now = func() time.Time { return now }

	a := r.Get(session)
	b := r.Get(&model.Session{User: &model.User{ID: 1}})
	other := r.Get(&model.Session{User: &model.User{ID: 2}})

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, model.DefaultRange(now, DefaultRangeDays), a.View().Range)

	r.Drop(1)
	assert.NotSame(t, a, r.Get(session))
}

func TestPoll_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	done := make(chan error)
	go func() {
		done <- Poll(ctx, 5*time.Millisecond, func(context.Context) {
			if calls.Add(1) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("poll did not stop")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}
