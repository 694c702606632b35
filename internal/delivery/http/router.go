package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"gigcalendar/internal/delivery/http/middleware"
	"gigcalendar/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(calendar *CalendarController, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	mux.HandleFunc("GET /bands/{bandID}/calendar", auth(calendar.GetWeek))
	mux.HandleFunc("GET /bands/{bandID}/calendar.ics", auth(calendar.GetWeekICS))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
