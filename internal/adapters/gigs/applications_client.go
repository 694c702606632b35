package gigs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gigcalendar/internal/domain"
)

type applicationsClient struct {
	baseURL string
	client  *http.Client
}

// NewApplicationsClient returns an ApplicationQueryService backed by the
// application service's REST API at baseURL.
func NewApplicationsClient(baseURL string, client *http.Client) domain.ApplicationQueryService {
	if client == nil {
		client = http.DefaultClient
	}
	return &applicationsClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type applicationDTO struct {
	ID      int64  `json:"id"`
	BandID  int64  `json:"band_id"`
	EventID int64  `json:"event_id"`
	Status  string `json:"status"`
}

type listApplicationsResponse struct {
	Applications []applicationDTO `json:"applications"`
}

func (c *applicationsClient) ListBandApplications(ctx context.Context, bandID int64) ([]domain.Application, error) {
	url := fmt.Sprintf("%s/bands/%d/applications", c.baseURL, bandID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from application service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("application service returned status: %d", resp.StatusCode)
	}

	var body listApplicationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode application service response: %w", err)
	}

	apps := make([]domain.Application, 0, len(body.Applications))
	for _, dto := range body.Applications {
		// Applications are keyed by template event id; records without one,
		// or carrying a status this core does not know, are dropped at the
		// boundary.
		if dto.EventID <= 0 || !domain.KnownStatus(domain.ApplicationStatus(dto.Status)) {
			continue
		}
		apps = append(apps, domain.Application{
			ID:      dto.ID,
			BandID:  dto.BandID,
			EventID: dto.EventID,
			Status:  domain.ApplicationStatus(dto.Status),
		})
	}
	return apps, nil
}
