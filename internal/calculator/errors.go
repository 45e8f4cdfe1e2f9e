package calculator

import "errors"

var (
	// ErrFutureBirthDate is returned when the reference date precedes the birth date.
	ErrFutureBirthDate = errors.New("birth date is after the reference date")
	// ErrUnknownLeapDayPolicy is returned when a leap-day policy name is not recognised.
	ErrUnknownLeapDayPolicy = errors.New("unknown leap-day policy")
)
