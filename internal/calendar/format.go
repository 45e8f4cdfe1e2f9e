package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Order is the field order of a date format.
type Order int

const (
	// YMD is year, month, day.
	YMD Order = iota
	// MDY is month, day, year.
	MDY
	// DMY is day, month, year.
	DMY
)

func (o Order) String() string {
	switch o {
	case MDY:
		return "MDY"
	case DMY:
		return "DMY"
	default:
		return "YMD"
	}
}

// Format describes how a date is written: a field order and the rune separating fields.
type Format struct {
	Order     Order
	Separator rune
}

// ISO is the YYYY-MM-DD format.
var ISO = Format{Order: YMD, Separator: '-'}

// ParseFormat reads a specifier such as "YMD-", "MDY/" or "DMY.".
func ParseFormat(spec string) (Format, error) {
	if utf8.RuneCountInString(spec) != 4 {
		return Format{}, fmt.Errorf("%w %q: want field order followed by a separator, e.g. YMD-", ErrUnknownFormat, spec)
	}

	var order Order
	switch strings.ToUpper(spec[:3]) {
	case "YMD":
		order = YMD
	case "MDY":
		order = MDY
	case "DMY":
		order = DMY
	default:
		return Format{}, fmt.Errorf("%w %q: field order must be YMD, MDY or DMY", ErrUnknownFormat, spec)
	}

	sep, _ := utf8.DecodeRuneInString(spec[3:])
	if sep >= '0' && sep <= '9' {
		return Format{}, fmt.Errorf("%w %q: separator cannot be a digit", ErrUnknownFormat, spec)
	}

	return Format{Order: order, Separator: sep}, nil
}

// String returns the specifier form, e.g. "MDY/".
func (f Format) String() string {
	return f.Order.String() + string(f.Separator)
}

// Layout returns a human readable pattern such as "MM/DD/YYYY".
func (f Format) Layout() string {
	sep := string(f.Separator)
	switch f.Order {
	case MDY:
		return "MM" + sep + "DD" + sep + "YYYY"
	case DMY:
		return "DD" + sep + "MM" + sep + "YYYY"
	default:
		return "YYYY" + sep + "MM" + sep + "DD"
	}
}

// Parse reads value as a date written in f.
func (f Format) Parse(value string) (Date, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, string(f.Separator))
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w %q: expected %s", ErrInvalidDateFormat, value, f.Layout())
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := parseField(part)
		if err != nil {
			return Date{}, fmt.Errorf("%w %q: expected %s", ErrInvalidDateFormat, value, f.Layout())
		}
		nums[i] = n
	}

	var year, month, day int
	switch f.Order {
	case MDY:
		month, day, year = nums[0], nums[1], nums[2]
	case DMY:
		day, month, year = nums[0], nums[1], nums[2]
	default:
		year, month, day = nums[0], nums[1], nums[2]
	}

	return New(year, time.Month(month), day)
}

// Format writes d using f with zero padded fields.
func (f Format) Format(d Date) string {
	y := fmt.Sprintf("%04d", d.Year)
	m := fmt.Sprintf("%02d", int(d.Month))
	dd := fmt.Sprintf("%02d", d.Day)
	sep := string(f.Separator)
	switch f.Order {
	case MDY:
		return m + sep + dd + sep + y
	case DMY:
		return dd + sep + m + sep + y
	default:
		return y + sep + m + sep + dd
	}
}

// ParseYear resolves a year-only value to January 1st of that year.
func ParseYear(value string) (Date, error) {
	value = strings.TrimSpace(value)
	year, err := parseField(value)
	if err != nil {
		return Date{}, fmt.Errorf("%w: year %q is not a number", ErrInvalidDateFormat, value)
	}
	return New(year, time.January, 1)
}

func parseField(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}
