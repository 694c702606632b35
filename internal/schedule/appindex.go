// Package schedule derives the weekly calendar layout: application
// annotations, per-event schedule blocks, and the seven-column week grid.
// Everything here is pure and recomputed on every render.
package schedule

import (
	"gigcalendar/internal/domain"
	"gigcalendar/internal/identity"
)

// ApplicationIndex is a lookup from template event id to the calling band's
// application. Queries accept template ids and synthetic instance ids alike;
// the synthetic form is decoded internally so callers never do it by hand.
type ApplicationIndex struct {
	byEvent map[int64]domain.Application
}

// BuildApplicationIndex groups applications by their template event id.
// Duplicate event ids should not occur, but when they do the last record
// wins rather than failing.
func BuildApplicationIndex(applications []domain.Application) *ApplicationIndex {
	idx := &ApplicationIndex{byEvent: make(map[int64]domain.Application, len(applications))}
	for _, app := range applications {
		idx.byEvent[app.EventID] = app
	}
	return idx
}

// StatusFor returns the band's application status for the given event id,
// or StatusNotApplied when no record exists.
func (idx *ApplicationIndex) StatusFor(eventID int64) domain.ApplicationStatus {
	app, ok := idx.byEvent[identity.Decode(eventID)]
	if !ok {
		return domain.StatusNotApplied
	}
	return app.Status
}

// HasApplied reports whether any application record exists for the event,
// regardless of its status.
func (idx *ApplicationIndex) HasApplied(eventID int64) bool {
	return idx.StatusFor(eventID) != domain.StatusNotApplied
}

// Len returns the number of distinct template events with an application.
func (idx *ApplicationIndex) Len() int {
	return len(idx.byEvent)
}
