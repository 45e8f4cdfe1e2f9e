package calculator

import (
	"fmt"
	"time"

	"github.com/adam-gaia/howoldami/internal/calendar"
)

type calendarCalculator struct {
	policy LeapDayPolicy
}

// Option configures the calculator returned by New.
type Option func(*calendarCalculator)

// WithLeapDayPolicy overrides the default RollForward policy.
func WithLeapDayPolicy(policy LeapDayPolicy) Option {
	return func(c *calendarCalculator) {
		c.policy = policy
	}
}

// New creates a Calculator based on calendar month arithmetic.
func New(opts ...Option) Calculator {
	c := &calendarCalculator{policy: RollForward}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *calendarCalculator) Age(birth, reference calendar.Date) (Age, error) {
	if !birth.Valid() {
		return Age{}, fmt.Errorf("birth date %s: %w", birth, calendar.ErrInvalidDateFormat)
	}
	if !reference.Valid() {
		return Age{}, fmt.Errorf("reference date %s: %w", reference, calendar.ErrInvalidDateFormat)
	}
	if reference.Before(birth) {
		return Age{}, fmt.Errorf("%w: born %s, reference %s", ErrFutureBirthDate, birth, reference)
	}

	// The anniversary of month n+1 always lies after the reference month, so
	// the only candidate that can overshoot is the one in the reference month.
	months := (reference.Year-birth.Year)*12 + int(reference.Month) - int(birth.Month)
	if c.anniversary(birth, months).After(reference) {
		months--
	}
	anchor := c.anniversary(birth, months)

	return Age{
		Years:     months / 12,
		Months:    months % 12,
		Days:      anchor.DaysUntil(reference),
		TotalDays: birth.DaysUntil(reference),
		Birthday:  months%12 == 0 && anchor == reference,
	}, nil
}

// anniversary returns birth shifted by months whole months, applying the
// leap-day policy when the birth day does not exist in the target month.
func (c *calendarCalculator) anniversary(birth calendar.Date, months int) calendar.Date {
	offset := int(birth.Month) - 1 + months
	year := birth.Year + offset/12
	month := time.Month(offset%12 + 1)

	last := calendar.DaysIn(year, month)
	if birth.Day <= last {
		return calendar.Date{Year: year, Month: month, Day: birth.Day}
	}

	end := calendar.Date{Year: year, Month: month, Day: last}
	if c.policy == ClampToMonthEnd {
		return end
	}
	return end.AddDays(1)
}
