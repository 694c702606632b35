// Package clock holds the pure time arithmetic behind the weekly grid:
// wall-clock strings to minute offsets, week boundaries, and the position of
// the current-time indicator.
package clock

import (
	"fmt"
	"time"

	"gigcalendar/internal/domain"
)

const minutesPerDay = 24 * 60

// ParseDate parses a YYYY-MM-DD string into a local-midnight time.Time. The
// components are taken apart explicitly so the date never shifts across a
// timezone boundary the way implicit UTC parsing would.
func ParseDate(s string) (time.Time, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &y, &m, &d); err != nil || len(s) != 10 {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekStart returns the Sunday on or before t, at local midnight.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// MinutesOf parses HH:MM or HH:MM:SS into minutes since midnight. An empty
// string means the field is absent: ok is false and there is no error.
// Malformed input returns domain.ErrInvalidTimeFormat.
func MinutesOf(s string) (minutes int, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	var h, m, sec int
	n, scanErr := fmt.Sscanf(s, "%2d:%2d:%2d", &h, &m, &sec)
	if n < 2 {
		n, scanErr = fmt.Sscanf(s, "%2d:%2d", &h, &m)
	}
	if n < 2 && scanErr != nil {
		return 0, false, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, s)
	}
	return h*60 + m, true, nil
}

// FormatClock12h renders a HH:MM[:SS] string as h:mm AM/PM.
func FormatClock12h(s string) (string, error) {
	mins, ok, err := MinutesOf(s)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	h := mins / 60
	m := mins % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix), nil
}

// CurrentTimePercent returns how far now's clock time is through the day as
// a percentage in [0, 100). Callers pass the render-time now so the
// indicator always reflects the moment of layout, never a cached mount time.
func CurrentTimePercent(now time.Time) float64 {
	mins := now.Hour()*60 + now.Minute()
	return float64(mins) / minutesPerDay * 100
}
