package middleware

import (
	"context"
	"net/http"
	"strings"

	h "gigcalendar/internal/delivery/http/helpers"
	"gigcalendar/internal/domain"
)

type contextKey string

const bandIDKey contextKey = "bandID"

// SetBandID returns a context with the authenticated band id set. Used by
// the auth middleware and by tests.
func SetBandID(ctx context.Context, bandID int64) context.Context {
	return context.WithValue(ctx, bandIDKey, bandID)
}

// BandIDFromContext returns the authenticated band id from the context, if
// present.
func BandIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(bandIDKey).(int64)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// band id in the request context. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			bandID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetBandID(r.Context(), bandID))
			next(w, r)
		}
	}
}
