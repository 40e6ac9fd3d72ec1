package valueobject

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage representation of a Date
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or time zone
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate creates a Date, normalising out-of-range values the way time.Date does
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DateOf returns the calendar date of t in t's own location
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Today returns the local calendar date of now
func Today(now time.Time) Date {
	return DateOf(now.In(time.Local))
}

// ParseDate parses "YYYY-MM-DD" or an ISO-8601 date-time. For date-times only the
// part before 'T' is used, so "2025-07-13T00:00:00.000Z" is 13 July in every zone.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	if i := strings.IndexAny(s, "Tt "); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Year returns the year
func (d Date) Year() int { return d.year }

// Month returns the month
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month
func (d Date) Day() int { return d.day }

// IsZero reports whether d is the zero Date
func (d Date) IsZero() bool { return d.year == 0 && d.month == 0 && d.day == 0 }

// String returns the date as YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Format renders the date with a Go time layout. The date is anchored at noon UTC so
// layouts that include a zone never move it across a day boundary.
func (d Date) Format(layout string) string {
	return d.time().Format(layout)
}

// Before reports whether d is an earlier calendar day than other
func (d Date) Before(other Date) bool {
	return d.compare(other) < 0
}

// After reports whether d is a later calendar day than other
func (d Date) After(other Date) bool {
	return d.compare(other) > 0
}

// AddDays returns the date n days later (earlier for negative n)
func (d Date) AddDays(n int) Date {
	return NewDate(d.year, d.month, d.day+n)
}

func (d Date) compare(other Date) int {
	switch {
	case d.year != other.year:
		return d.year - other.year
	case d.month != other.month:
		return int(d.month) - int(other.month)
	default:
		return d.day - other.day
	}
}

func (d Date) time() time.Time {
	return time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
