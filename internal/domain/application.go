package domain

import "context"

// ApplicationStatus is the review state of a band's submission to play an
// event. Any status at all counts as "applied".
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"

	// StatusNotApplied is the zero value reported when no application record
	// exists for an event. It is never stored.
	StatusNotApplied ApplicationStatus = "not_applied"
)

// KnownStatus reports whether s is one of the stored application statuses.
func KnownStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Application is a band's submission to perform at a template event.
// EventID is always a template id, never a synthetic instance id.
type Application struct {
	ID      int64             `json:"id"`
	BandID  int64             `json:"band_id"`
	EventID int64             `json:"event_id"`
	Status  ApplicationStatus `json:"status"`
}

// ApplicationQueryService is the upstream contract for a band's submitted
// applications, always keyed by template event id.
type ApplicationQueryService interface {
	ListBandApplications(ctx context.Context, bandID int64) ([]Application, error)
}
