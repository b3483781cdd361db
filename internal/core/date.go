package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 day format used on the wire and in storage.
const DateFormat = "2006-01-02"

const day = 24 * time.Hour

// Date is a calendar date with day granularity, anchored at midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a normalized Date from year, month, day.
// Out-of-range values roll over the way time.Date defines (day 0 of a
// month is the last day of the previous month).
func NewDate(year, month, dayOfMonth int) Date {
	return Date{Time: time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, DateFormat, err)
	}
	return Date{Time: t}, nil
}

// MustParseDate is like ParseDate but panics on error. Test helper.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// EndOfMonth returns the last calendar day of d's month.
// Day zero of the next month normalizes to the last day of the current one.
func (d Date) EndOfMonth() Date {
	return NewDate(d.Year(), int(d.Month())+1, 0)
}

// DaysUntil returns the whole-day difference between d and later.
// Negative when later precedes d. Both dates sit at midnight UTC, so the
// division is exact.
func (d Date) DaysUntil(later Date) int {
	return int(later.Sub(d.Time) / day)
}

// String returns the ISO form.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// Display renders the date for human-readable output, e.g. "5 Feb 2024".
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2 Jan 2006")
}

// MarshalJSON encodes the date as an ISO YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the date from an ISO YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
