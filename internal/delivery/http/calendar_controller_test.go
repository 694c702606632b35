package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	h "gigcalendar/internal/delivery/http/helpers"
	"gigcalendar/internal/delivery/http/middleware"
	"gigcalendar/internal/domain"
	"gigcalendar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendarService records the last request and returns a canned result.
type fakeCalendarService struct {
	model      *domain.RenderModel
	err        error
	lastBandID int64
	lastPivot  string
	calls      int
}

func (f *fakeCalendarService) LoadWeek(ctx context.Context, bandID int64, pivot string) (*domain.RenderModel, error) {
	f.calls++
	f.lastBandID = bandID
	f.lastPivot = pivot
	if f.err != nil {
		return nil, f.err
	}
	return f.model, nil
}

func testController(svc domain.CalendarService, cache *services.RenderCache) *CalendarController {
	c := NewCalendarController(svc, cache, slog.New(slog.DiscardHandler))
	c.Now = func() time.Time { return time.Date(2024, 1, 17, 12, 0, 0, 0, time.Local) }
	return c
}

func authedRequest(method, target string, bandID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.SetBandID(req.Context(), bandID))
}

func emptyWeek() *domain.RenderModel {
	return &domain.RenderModel{WeekStart: "2024-01-14", WeekEnd: "2024-01-20", Columns: make([]domain.DayColumn, 7)}
}

func TestCalendarController_GetWeek(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		bandID     int64 // authenticated band
		svc        *fakeCalendarService
		wantStatus int
		wantCode   string
		check      func(t *testing.T, svc *fakeCalendarService, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "success with explicit pivot",
			target:     "/bands/9/calendar?pivot=2024-01-17",
			bandID:     9,
			svc:        &fakeCalendarService{model: emptyWeek()},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, svc *fakeCalendarService, rec *httptest.ResponseRecorder) {
				assert.Equal(t, int64(9), svc.lastBandID)
				assert.Equal(t, "2024-01-17", svc.lastPivot)

				var body h.APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Nil(t, body.Error)
				data, err := json.Marshal(body.Data)
				require.NoError(t, err)
				var model domain.RenderModel
				require.NoError(t, json.Unmarshal(data, &model))
				assert.Equal(t, "2024-01-14", model.WeekStart)
			},
		},
		{
			name:       "missing pivot defaults to today",
			target:     "/bands/9/calendar",
			bandID:     9,
			svc:        &fakeCalendarService{model: emptyWeek()},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, svc *fakeCalendarService, _ *httptest.ResponseRecorder) {
				assert.Equal(t, "2024-01-17", svc.lastPivot)
			},
		},
		{
			name:       "another band's calendar is forbidden",
			target:     "/bands/9/calendar",
			bandID:     12,
			svc:        &fakeCalendarService{model: emptyWeek()},
			wantStatus: http.StatusForbidden,
			wantCode:   h.ErrCodeForbidden,
		},
		{
			name:       "bad band id",
			target:     "/bands/zero/calendar",
			bandID:     9,
			svc:        &fakeCalendarService{model: emptyWeek()},
			wantStatus: http.StatusBadRequest,
			wantCode:   h.ErrCodeBadRequest,
		},
		{
			name:       "bad pivot",
			target:     "/bands/9/calendar?pivot=nope",
			bandID:     9,
			svc:        &fakeCalendarService{err: domain.ErrInvalidDate},
			wantStatus: http.StatusBadRequest,
			wantCode:   h.ErrCodeBadRequest,
		},
		{
			name:       "upstream failure maps to 502",
			target:     "/bands/9/calendar?pivot=2024-01-17",
			bandID:     9,
			svc:        &fakeCalendarService{err: &domain.FetchError{Service: "events", Err: errors.New("down")}},
			wantStatus: http.StatusBadGateway,
			wantCode:   h.ErrCodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			ctrl := testController(tt.svc, nil)
			mux.HandleFunc("GET /bands/{bandID}/calendar", ctrl.GetWeek)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, authedRequest(http.MethodGet, tt.target, tt.bandID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body h.APIResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotNil(t, body.Error)
				assert.Equal(t, tt.wantCode, body.Error.Code)
			}
			if tt.check != nil {
				tt.check(t, tt.svc, rec)
			}
		})
	}
}

func TestCalendarController_GetWeek_ServesWarmCache(t *testing.T) {
	cache := services.NewRenderCache()
	cache.Put(9, emptyWeek())
	svc := &fakeCalendarService{model: emptyWeek()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /bands/{bandID}/calendar", testController(svc, cache).GetWeek)

	// Default view hits the warm cache; no load issued.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/bands/9/calendar", 9))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.calls)

	// An explicit pivot always computes fresh.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/bands/9/calendar?pivot=2024-01-24", 9))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.calls)
}

func TestCalendarController_GetWeekICS(t *testing.T) {
	window := emptyWeek()
	dates := []string{"2024-01-14", "2024-01-15", "2024-01-16", "2024-01-17", "2024-01-18", "2024-01-19", "2024-01-20"}
	for i, d := range dates {
		window.Columns[i].Date = d
	}
	window.Columns[1].Events = []domain.EventCard{{
		Event: domain.Event{ID: 42, Title: "Showcase", EventDate: "2024-01-15"},
		Blocks: []domain.ScheduleBlock{
			{Kind: domain.BlockMain, TopOffsetMinutes: 19 * 60, HeightMinutes: 120, EventRef: 42},
		},
	}}

	svc := &fakeCalendarService{model: window}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bands/{bandID}/calendar.ics", testController(svc, nil).GetWeekICS)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/bands/9/calendar.ics?pivot=2024-01-17", 9))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Showcase")
}

func TestRouter_RequiresAuth(t *testing.T) {
	svc := &fakeCalendarService{model: emptyWeek()}
	router := NewRouter(testController(svc, nil), rejectAllVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/bands/9/calendar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

type rejectAllVerifier struct{}

func (rejectAllVerifier) Verify(string) (int64, error) { return 0, errors.New("no") }
