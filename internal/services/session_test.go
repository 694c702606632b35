package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gigcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingLoader returns a model stamped with the requested pivot, and can
// hold a specific pivot's load open until released.
type blockingLoader struct {
	mu      sync.Mutex
	holds   map[string]chan struct{} // pivot -> release gate
	started map[string]chan struct{} // pivot -> closed when load begins
	errs    map[string]error
	calls   []string
}

func newBlockingLoader() *blockingLoader {
	return &blockingLoader{
		holds:   make(map[string]chan struct{}),
		started: make(map[string]chan struct{}),
		errs:    make(map[string]error),
	}
}

func (l *blockingLoader) hold(pivot string) (started <-chan struct{}, release func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	gate := make(chan struct{})
	begun := make(chan struct{})
	l.holds[pivot] = gate
	l.started[pivot] = begun
	return begun, func() { close(gate) }
}

func (l *blockingLoader) LoadWeek(ctx context.Context, bandID int64, pivot string) (*domain.RenderModel, error) {
	l.mu.Lock()
	l.calls = append(l.calls, pivot)
	gate := l.holds[pivot]
	begun := l.started[pivot]
	err := l.errs[pivot]
	l.mu.Unlock()

	if begun != nil {
		close(begun)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &domain.RenderModel{WeekStart: pivot}, nil
}

func TestCalendarSession_NavigateAndShift(t *testing.T) {
	ctx := context.Background()
	loader := newBlockingLoader()
	now := func() time.Time { return time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local) }
	s := NewCalendarSession(loader, testLogger(), 9, now)

	state, model, err := s.Current()
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, model)
	assert.NoError(t, err)

	s.Navigate(ctx, "2024-01-17")
	state, model, err = s.Current()
	require.NoError(t, err)
	assert.Equal(t, StateRendered, state)
	assert.Equal(t, "2024-01-17", model.WeekStart)

	s.NextWeek(ctx)
	_, model, _ = s.Current()
	assert.Equal(t, "2024-01-24", model.WeekStart)
	assert.Equal(t, "2024-01-24", s.Pivot())

	s.PreviousWeek(ctx)
	s.PreviousWeek(ctx)
	_, model, _ = s.Current()
	assert.Equal(t, "2024-01-10", model.WeekStart)
}

func TestCalendarSession_FirstShiftStartsFromToday(t *testing.T) {
	loader := newBlockingLoader()
	now := func() time.Time { return time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local) }
	s := NewCalendarSession(loader, testLogger(), 9, now)

	s.NextWeek(context.Background())
	_, model, _ := s.Current()
	assert.Equal(t, "2024-01-24", model.WeekStart)
}

func TestCalendarSession_StaleResultDiscarded(t *testing.T) {
	// Navigate W -> W+1 -> W with the W+1 fetch still in flight; when it
	// finally resolves, the model must keep reflecting W.
	ctx := context.Background()
	loader := newBlockingLoader()
	s := NewCalendarSession(loader, testLogger(), 9, nil)

	const weekW = "2024-01-14"
	const weekNext = "2024-01-21"

	s.Navigate(ctx, weekW)

	begun, release := loader.hold(weekNext)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Navigate(ctx, weekNext)
	}()
	<-begun // the W+1 load is in flight

	s.Navigate(ctx, weekW) // user navigated back before W+1 resolved

	release()
	wg.Wait()

	state, model, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, StateRendered, state)
	assert.Equal(t, weekW, model.WeekStart, "stale W+1 result must not overwrite W")
	assert.Equal(t, weekW, s.Pivot())
}

func TestCalendarSession_FailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	loader := newBlockingLoader()
	loader.errs["2024-01-17"] = errors.New("upstream down")
	s := NewCalendarSession(loader, testLogger(), 9, nil)

	s.Navigate(ctx, "2024-01-17")
	state, model, err := s.Current()
	assert.Equal(t, StateFailed, state)
	assert.Nil(t, model)
	require.Error(t, err)

	// Same navigation action retries.
	loader.mu.Lock()
	delete(loader.errs, "2024-01-17")
	loader.mu.Unlock()

	s.Navigate(ctx, "2024-01-17")
	state, model, err = s.Current()
	require.NoError(t, err)
	assert.Equal(t, StateRendered, state)
	assert.Equal(t, "2024-01-17", model.WeekStart)
}
