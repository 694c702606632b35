package postgres

import (
	"context"
	"database/sql"

	"gigcalendar/internal/domain"
)

type applicationRepository struct {
	DB *sql.DB
}

// NewApplicationRepository returns an ApplicationQueryService served straight
// from the shared database, for deployments where application records are
// co-located with this service instead of behind the application service's
// REST API.
func NewApplicationRepository(db *sql.DB) domain.ApplicationQueryService {
	return &applicationRepository{
		DB: db,
	}
}

func (r *applicationRepository) ListBandApplications(ctx context.Context, bandID int64) ([]domain.Application, error) {
	query := `
		SELECT id, band_id, event_id, status
		FROM applications
		WHERE band_id = $1
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, bandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		var a domain.Application
		var status string
		if err := rows.Scan(&a.ID, &a.BandID, &a.EventID, &status); err != nil {
			return nil, err
		}
		a.Status = domain.ApplicationStatus(status)
		if !domain.KnownStatus(a.Status) {
			continue
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
