// Package gigs holds the HTTP clients for the upstream Event Query Service
// and Application Query Service. Responses are validated and coerced here,
// at the boundary, so the layout engine never sees a record without an id,
// a malformed date, or a time string it would have to null-chain around.
package gigs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
)

type eventsClient struct {
	baseURL string
	client  *http.Client
}

// NewEventsClient returns an EventQueryService backed by the event service's
// REST API at baseURL.
func NewEventsClient(baseURL string, client *http.Client) domain.EventQueryService {
	if client == nil {
		client = http.DefaultClient
	}
	return &eventsClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type bandScheduleDTO struct {
	BandID           int64  `json:"band_id"`
	BandName         string `json:"band_name"`
	PerformanceOrder *int   `json:"performance_order"`
	LoadInTime       string `json:"load_in_time"`
	SoundCheckTime   string `json:"sound_check_time"`
}

type eventDTO struct {
	ID          int64             `json:"id"`
	VenueID     int64             `json:"venue_id"`
	Title       string            `json:"title"`
	EventDate   string            `json:"event_date"`
	DoorsTime   string            `json:"doors_time"`
	ShowTime    string            `json:"show_time"`
	EndTime     string            `json:"end_time"`
	IsRecurring bool              `json:"is_recurring"`
	Bands       []bandScheduleDTO `json:"bands"`
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

func (c *eventsClient) ListEvents(ctx context.Context, params domain.ListEventsParams) ([]domain.Event, error) {
	q := url.Values{}
	q.Set("start_date", params.StartDate)
	q.Set("end_date", params.EndDate)
	if params.VenueID != 0 {
		q.Set("venue_id", strconv.FormatInt(params.VenueID, 10))
	}

	var body listEventsResponse
	if err := c.get(ctx, "/events?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(body.Events))
	for _, dto := range body.Events {
		ev, ok := coerceEvent(dto)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *eventsClient) GetEventsDetail(ctx context.Context, ids []int64) (map[int64]domain.Event, error) {
	if len(ids) == 0 {
		return map[int64]domain.Event{}, nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	var body listEventsResponse
	if err := c.get(ctx, "/events/detail?ids="+strings.Join(parts, ","), &body); err != nil {
		return nil, err
	}

	// Events the upstream could not resolve are simply absent from the
	// response; callers degrade those individually.
	details := make(map[int64]domain.Event, len(body.Events))
	for _, dto := range body.Events {
		ev, ok := coerceEvent(dto)
		if !ok {
			continue
		}
		details[ev.ID] = ev
	}
	return details, nil
}

func (c *eventsClient) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from event service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("event service returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode event service response: %w", err)
	}
	return nil
}

// coerceEvent validates a wire record into a domain event. Records without a
// positive id or a well-formed date are dropped; malformed time strings are
// coerced to absent so the layout never handles them.
func coerceEvent(dto eventDTO) (domain.Event, bool) {
	if dto.ID <= 0 {
		return domain.Event{}, false
	}
	if _, err := clock.ParseDate(dto.EventDate); err != nil {
		return domain.Event{}, false
	}

	ev := domain.Event{
		ID:          dto.ID,
		VenueID:     dto.VenueID,
		Title:       dto.Title,
		EventDate:   dto.EventDate,
		DoorsTime:   coerceTime(dto.DoorsTime),
		ShowTime:    coerceTime(dto.ShowTime),
		EndTime:     coerceTime(dto.EndTime),
		IsRecurring: dto.IsRecurring,
	}
	for _, b := range dto.Bands {
		if b.BandID <= 0 {
			continue
		}
		ev.Bands = append(ev.Bands, domain.BandSchedule{
			BandID:           b.BandID,
			BandName:         b.BandName,
			PerformanceOrder: b.PerformanceOrder,
			LoadInTime:       coerceTime(b.LoadInTime),
			SoundCheckTime:   coerceTime(b.SoundCheckTime),
		})
	}
	return ev, true
}

func coerceTime(s string) string {
	if _, _, err := clock.MinutesOf(s); err != nil {
		return ""
	}
	return s
}
