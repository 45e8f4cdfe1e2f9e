package calendar

import "errors"

var (
	// ErrInvalidDateFormat is returned when a value cannot be read as a calendar date.
	ErrInvalidDateFormat = errors.New("invalid date")
	// ErrUnknownFormat is returned when a date format specifier is not recognised.
	ErrUnknownFormat = errors.New("unknown date format")
)
