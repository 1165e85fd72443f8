package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the only accepted wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time-of-day, serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromTime truncates t to its calendar date.
func DateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. Out-of-range days such as
// 2024-02-30 are rejected rather than normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("must be a valid date in YYYY-MM-DD format")
	}
	return Date{t: t}, nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
