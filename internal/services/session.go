package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
)

// WeekState is the calendar session's lifecycle state.
type WeekState string

const (
	StateIdle     WeekState = "idle"
	StateLoading  WeekState = "loading"
	StateRendered WeekState = "rendered"
	StateFailed   WeekState = "failed"
)

// CalendarSession drives week navigation for one band. It owns the render
// model (single writer) and guards against the navigation race: each
// Navigate takes a monotonically increasing token, and a load that resolves
// after a newer navigation has started is discarded instead of committed.
// No cancellation is needed beyond that; a stale fetch may finish and simply
// be ignored.
type CalendarSession struct {
	loader domain.CalendarService
	logger *slog.Logger
	bandID int64
	now    func() time.Time

	mu    sync.Mutex
	seq   uint64
	pivot string
	state WeekState
	model *domain.RenderModel
	err   error
}

func NewCalendarSession(loader domain.CalendarService, logger *slog.Logger, bandID int64, now func() time.Time) *CalendarSession {
	if now == nil {
		now = time.Now
	}
	return &CalendarSession{
		loader: loader,
		logger: logger,
		bandID: bandID,
		now:    now,
		state:  StateIdle,
	}
}

// Navigate loads the week containing pivot and commits the result unless a
// newer navigation superseded this one while the fetch was in flight.
// Navigating again after a failure retries the same week.
func (s *CalendarSession) Navigate(ctx context.Context, pivot string) {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.pivot = pivot
	s.state = StateLoading
	s.mu.Unlock()

	model, err := s.loader.LoadWeek(ctx, s.bandID, pivot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		// A newer navigation won; this result is stale. Not an error.
		s.logger.Debug("stale week result discarded", "pivot", pivot)
		return
	}
	if err != nil {
		s.state = StateFailed
		s.err = err
		s.model = nil
		return
	}
	s.state = StateRendered
	s.err = nil
	s.model = model
}

// PreviousWeek shifts the pivot back seven days and reloads. With no pivot
// yet, it starts from today.
func (s *CalendarSession) PreviousWeek(ctx context.Context) {
	s.Navigate(ctx, s.shiftedPivot(-7))
}

// NextWeek shifts the pivot forward seven days and reloads.
func (s *CalendarSession) NextWeek(ctx context.Context) {
	s.Navigate(ctx, s.shiftedPivot(7))
}

func (s *CalendarSession) shiftedPivot(days int) string {
	s.mu.Lock()
	pivot := s.pivot
	s.mu.Unlock()

	base, err := clock.ParseDate(pivot)
	if err != nil {
		base = s.now()
	}
	return clock.FormatDate(base.AddDate(0, 0, days))
}

// Current returns the session's state, the last committed model (nil unless
// rendered), and the last error (nil unless failed).
func (s *CalendarSession) Current() (WeekState, *domain.RenderModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.model, s.err
}

// Pivot returns the pivot date of the most recent navigation.
func (s *CalendarSession) Pivot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pivot
}
