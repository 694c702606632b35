package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeFormat marks a malformed time-of-day string. It is
	// localized to the one field that carried it; layout treats the field as
	// absent and never aborts.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidDate marks a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	ErrNotFound = errors.New("not found")
)

// FetchError is a week-level failure of an upstream query service. It is the
// only user-visible failure: no partial week renders, and the same
// navigation action retries it.
type FetchError struct {
	Service string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s failed: %v", e.Service, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
