package domain

import "context"

// Event represents a bookable occurrence at a venue. ID may be a template id
// (a persisted event) or a synthetic instance id encoding one concrete
// occurrence of a recurring template; see internal/identity.
type Event struct {
	ID          int64          `json:"id"`
	VenueID     int64          `json:"venue_id"`
	Title       string         `json:"title"`
	EventDate   string         `json:"event_date"` // YYYY-MM-DD, no time component
	DoorsTime   string         `json:"doors_time,omitempty"`
	ShowTime    string         `json:"show_time,omitempty"`
	EndTime     string         `json:"end_time,omitempty"`
	IsRecurring bool           `json:"is_recurring"`
	Bands       []BandSchedule `json:"bands,omitempty"`
}

// StartTime returns the event's effective start for sorting and layout:
// doors time when present, otherwise show time. Empty means no start is
// known yet.
func (e Event) StartTime() string {
	if e.DoorsTime != "" {
		return e.DoorsTime
	}
	return e.ShowTime
}

// BandSchedule is one band's participation in an Event. PerformanceOrder is
// nil when the bill position has not been assigned; ties and unassigned
// entries keep their original list order.
type BandSchedule struct {
	BandID           int64  `json:"band_id"`
	BandName         string `json:"band_name"`
	PerformanceOrder *int   `json:"performance_order,omitempty"`
	LoadInTime       string `json:"load_in_time,omitempty"`
	SoundCheckTime   string `json:"sound_check_time,omitempty"`
}

// ListEventsParams narrows an event listing to a date window and optionally
// a single venue. Dates are YYYY-MM-DD.
type ListEventsParams struct {
	VenueID   int64
	StartDate string
	EndDate   string
}

// EventQueryService is the upstream contract that owns event persistence and
// recurrence expansion. Recurring templates arrive already expanded into
// synthetic instance ids; this core only decodes them.
type EventQueryService interface {
	ListEvents(ctx context.Context, params ListEventsParams) ([]Event, error)
	// GetEventsDetail returns events with Bands populated, keyed by the
	// requested id. An id absent from the result means that event's detail
	// fetch failed; callers degrade that event rather than aborting the week.
	GetEventsDetail(ctx context.Context, ids []int64) (map[int64]Event, error)
}
