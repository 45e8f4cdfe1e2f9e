package calculator

import (
	"fmt"
	"strings"

	"github.com/adam-gaia/howoldami/internal/calendar"
)

// Age is the elapsed calendar time between a birth date and a reference date.
// Months and Days are the remainder after whole years and whole months.
// TotalDays is the plain day count between the two dates.
type Age struct {
	Years     int
	Months    int
	Days      int
	TotalDays int
	Birthday  bool
}

// Calculator describes the behaviour required from an age calculator.
type Calculator interface {
	Age(birth, reference calendar.Date) (Age, error)
}

// LeapDayPolicy decides where an anniversary lands when its day does not
// exist in the target month, e.g. Feb 29 in a common year.
type LeapDayPolicy int

const (
	// RollForward moves the anniversary to the first day of the next month (Feb 29 -> Mar 1).
	RollForward LeapDayPolicy = iota
	// ClampToMonthEnd moves the anniversary to the last day of the month (Feb 29 -> Feb 28).
	ClampToMonthEnd
)

// ParseLeapDayPolicy accepts "mar1" or "feb28".
func ParseLeapDayPolicy(name string) (LeapDayPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mar1":
		return RollForward, nil
	case "feb28":
		return ClampToMonthEnd, nil
	default:
		return 0, fmt.Errorf("%w %q: want mar1 or feb28", ErrUnknownLeapDayPolicy, name)
	}
}

func (p LeapDayPolicy) String() string {
	if p == ClampToMonthEnd {
		return "feb28"
	}
	return "mar1"
}
