package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gigcalendar/internal/clock"
	h "gigcalendar/internal/delivery/http/helpers"
	"gigcalendar/internal/delivery/http/middleware"
	"gigcalendar/internal/domain"
	"gigcalendar/internal/services"
)

// CalendarController serves a band's weekly calendar render model and its
// iCalendar feed.
type CalendarController struct {
	Service domain.CalendarService
	Cache   *services.RenderCache
	Logger  *slog.Logger
	Now     func() time.Time
}

func NewCalendarController(svc domain.CalendarService, cache *services.RenderCache, logger *slog.Logger) *CalendarController {
	return &CalendarController{
		Service: svc,
		Cache:   cache,
		Logger:  logger,
		Now:     time.Now,
	}
}

// GetWeek godoc
// @Summary Weekly calendar for a band
// @Description Returns the seven-day render model for the week containing the pivot date (default: today). Events are laid out as load-in, sound-check, and main blocks with the band's application status attached.
// @Tags calendar
// @Produce json
// @Param bandID path int true "Band ID"
// @Param pivot query string false "Pivot date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse{data=domain.RenderModel}
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Failure 502 {object} helpers.APIResponse
// @Security BearerAuth
// @Router /bands/{bandID}/calendar [get]
func (c *CalendarController) GetWeek(w http.ResponseWriter, r *http.Request) {
	bandID, ok := c.authorizedBand(w, r)
	if !ok {
		return
	}

	pivot := r.URL.Query().Get("pivot")
	if pivot == "" {
		// Default dashboard view: current week, served warm when available.
		if c.Cache != nil {
			if model, hit := c.Cache.Get(bandID); hit {
				h.WriteJSONSuccess(w, http.StatusOK, model)
				return
			}
		}
		pivot = clock.FormatDate(c.Now())
	}

	model, err := c.Service.LoadWeek(r.Context(), bandID, pivot)
	if err != nil {
		c.writeLoadError(w, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, model)
}

// GetWeekICS godoc
// @Summary Weekly calendar as an iCalendar feed
// @Description Returns the same week as GetWeek, rendered as a text/calendar feed for subscribing calendar apps.
// @Tags calendar
// @Produce plain
// @Param bandID path int true "Band ID"
// @Param pivot query string false "Pivot date (YYYY-MM-DD)"
// @Success 200 {string} string "iCalendar feed"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse
// @Failure 502 {object} helpers.APIResponse
// @Security BearerAuth
// @Router /bands/{bandID}/calendar.ics [get]
func (c *CalendarController) GetWeekICS(w http.ResponseWriter, r *http.Request) {
	bandID, ok := c.authorizedBand(w, r)
	if !ok {
		return
	}

	pivot := r.URL.Query().Get("pivot")
	if pivot == "" {
		pivot = clock.FormatDate(c.Now())
	}

	model, err := c.Service.LoadWeek(r.Context(), bandID, pivot)
	if err != nil {
		c.writeLoadError(w, err)
		return
	}
	feed, err := services.ExportWeekICS(model, c.Now())
	if err != nil {
		c.Logger.Error("ics export failed", "band_id", bandID, "error", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternal, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(feed))
}

// authorizedBand parses the path band id and checks it against the
// authenticated token subject. A band may only read its own calendar.
func (c *CalendarController) authorizedBand(w http.ResponseWriter, r *http.Request) (int64, bool) {
	bandID, err := strconv.ParseInt(r.PathValue("bandID"), 10, 64)
	if err != nil || bandID <= 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid band id")
		return 0, false
	}
	authedID, ok := middleware.BandIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return 0, false
	}
	if authedID != bandID {
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "calendar belongs to another band")
		return 0, false
	}
	return bandID, true
}

func (c *CalendarController) writeLoadError(w http.ResponseWriter, err error) {
	var fetchErr *domain.FetchError
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "pivot must be YYYY-MM-DD")
	case errors.As(err, &fetchErr):
		c.Logger.Error("week fetch failed", "service", fetchErr.Service, "error", fetchErr.Err)
		h.WriteJSONError(w, http.StatusBadGateway, h.ErrCodeUpstream, "upstream fetch failed, retry the same week")
	default:
		c.Logger.Error("week load failed", "error", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternal, "internal error")
	}
}
