package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
	"gigcalendar/internal/schedule"
)

type calendarService struct {
	events         domain.EventQueryService
	apps           domain.ApplicationQueryService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewCalendarService wires the week loader against the two upstream query
// services. now is injectable for tests; pass time.Now in production.
func NewCalendarService(events domain.EventQueryService, apps domain.ApplicationQueryService, logger *slog.Logger, timeout time.Duration, now func() time.Time) domain.CalendarService {
	if now == nil {
		now = time.Now
	}
	return &calendarService{
		events:         events,
		apps:           apps,
		logger:         logger,
		contextTimeout: timeout,
		now:            now,
	}
}

// LoadWeek computes the seven-day window for the pivot date, fetches its
// events and the band's applications, and lays everything out into a fresh
// render model.
//
// Failure semantics: an upstream deadline produces an empty week rather than
// blocking the caller; any other event-list failure surfaces as a FetchError
// and renders nothing; a detail failure degrades only the affected events to
// an empty band list; an application failure degrades every card to
// not-applied.
func (s *calendarService) LoadWeek(ctx context.Context, bandID int64, pivot string) (*domain.RenderModel, error) {
	pivotDate, err := clock.ParseDate(pivot)
	if err != nil {
		return nil, fmt.Errorf("pivot date: %w", err)
	}
	window := schedule.ComputeWeek(pivotDate)

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.events.ListEvents(ctx, domain.ListEventsParams{
		StartDate: clock.FormatDate(window.Start),
		EndDate:   clock.FormatDate(window.End),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// Fail open: an upstream that never answers yields an empty
			// calendar, not a spinner.
			s.logger.Warn("event list timed out, rendering empty week",
				"band_id", bandID, "week_start", clock.FormatDate(window.Start))
			events = nil
		} else {
			return nil, &domain.FetchError{Service: "events", Err: err}
		}
	}

	events = s.attachDetail(ctx, events)

	index := s.applicationIndex(ctx, bandID)

	columns := schedule.Bucket(events, window)
	return schedule.Layout(window, columns, index, s.now()), nil
}

// attachDetail issues one batched detail fetch for all listed events and
// merges the returned band schedules in. Events the batch does not cover
// keep an empty band list and still render a main block.
func (s *calendarService) attachDetail(ctx context.Context, events []domain.Event) []domain.Event {
	if len(events) == 0 {
		return events
	}
	ids := make([]int64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}

	details, err := s.events.GetEventsDetail(ctx, ids)
	if err != nil {
		s.logger.Warn("detail fetch failed, rendering events without band schedules", "error", err)
		return events
	}
	for i := range events {
		if d, ok := details[events[i].ID]; ok {
			events[i].Bands = d.Bands
		} else {
			s.logger.Warn("no detail for event, rendering without band schedules", "event_id", events[i].ID)
		}
	}
	return events
}

func (s *calendarService) applicationIndex(ctx context.Context, bandID int64) *schedule.ApplicationIndex {
	apps, err := s.apps.ListBandApplications(ctx, bandID)
	if err != nil {
		s.logger.Warn("application fetch failed, rendering without annotations",
			"band_id", bandID, "error", err)
		return schedule.BuildApplicationIndex(nil)
	}
	return schedule.BuildApplicationIndex(apps)
}
