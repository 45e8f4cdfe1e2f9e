package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adam-gaia/howoldami/internal/calculator"
	"github.com/adam-gaia/howoldami/internal/calendar"
)

// ErrUnknownMode is returned when an output mode name is not recognised.
var ErrUnknownMode = errors.New("unknown output mode")

// Mode selects how a Report is rendered.
type Mode int

const (
	// Years prints the whole number of years only.
	Years Mode = iota
	// Full prints years, months and days as a sentence.
	Full
	// JSON prints a single JSON object.
	JSON
)

// ParseMode accepts "years", "full" or "json".
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "years":
		return Years, nil
	case "full":
		return Full, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("%w %q: want years, full or json", ErrUnknownMode, name)
	}
}

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case JSON:
		return "json"
	default:
		return "years"
	}
}

// Report is everything needed to render one result.
type Report struct {
	Birth     calendar.Date
	Reference calendar.Date
	Age       calculator.Age
	// Greet prints a birthday greeting ahead of the age in text modes.
	Greet bool
}

// Printer renders reports to a writer.
type Printer struct {
	w    io.Writer
	mode Mode
}

// NewPrinter returns a Printer writing to w in the given mode.
func NewPrinter(w io.Writer, mode Mode) *Printer {
	return &Printer{w: w, mode: mode}
}

// Print writes r followed by a newline.
func (p *Printer) Print(r Report) error {
	if p.mode == JSON {
		return writeJSON(p.w, newAgeResponse(r))
	}

	if r.Greet && r.Age.Birthday {
		if _, err := fmt.Fprintln(p.w, "Happy birthday!"); err != nil {
			return fmt.Errorf("write greeting: %w", err)
		}
	}

	line := strconv.Itoa(r.Age.Years)
	if p.mode == Full {
		line = Sentence(r.Age)
	}
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		return fmt.Errorf("write age: %w", err)
	}
	return nil
}

// Sentence renders an age as "34 years, 2 months and 5 days".
func Sentence(a calculator.Age) string {
	return fmt.Sprintf("%s, %s and %s",
		plural(a.Years, "year"),
		plural(a.Months, "month"),
		plural(a.Days, "day"),
	)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

type ageResponse struct {
	BirthDate     string `json:"birth_date"`
	ReferenceDate string `json:"reference_date"`
	Years         int    `json:"years"`
	Months        int    `json:"months"`
	Days          int    `json:"days"`
	TotalDays     int    `json:"total_days"`
	Birthday      bool   `json:"birthday"`
}

func newAgeResponse(r Report) ageResponse {
	return ageResponse{
		BirthDate:     r.Birth.String(),
		ReferenceDate: r.Reference.String(),
		Years:         r.Age.Years,
		Months:        r.Age.Months,
		Days:          r.Age.Days,
		TotalDays:     r.Age.TotalDays,
		Birthday:      r.Age.Birthday,
	}
}

func writeJSON(w io.Writer, payload any) error {
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
