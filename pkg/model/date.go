package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	layoutISO   = "2006-01-02"
	layoutClock = "15:04"
)

// Date is a calendar date carried on the wire as "2006-01-02". The
// fixed-width form makes plain string comparison a correct ordering.
type Date string

// NewDate truncates a time to its calendar date.
func NewDate(t time.Time) Date {
	return Date(t.Format(layoutISO))
}

// Today returns the current local date.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate validates a "2006-01-02" string.
func ParseDate(v string) (Date, error) {
	t, err := time.Parse(layoutISO, v)
	if err != nil {
		return "", fmt.Errorf("model: bad date %q: %w", v, err)
	}
	return NewDate(t), nil
}

// Time converts the date back into a time at local midnight.
func (d Date) Time() (time.Time, error) {
	return time.ParseInLocation(layoutISO, string(d), time.Local)
}

// Before reports strict ordering between two dates.
func (d Date) Before(other Date) bool { return d < other }

// After reports strict reverse ordering between two dates.
func (d Date) After(other Date) bool { return d > other }

// Within reports whether the date falls inside [from, to], bounds included.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// IsZero reports an unset date.
func (d Date) IsZero() bool { return d == "" }

// AddDays shifts the date by a number of days.
func (d Date) AddDays(days int) Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return NewDate(t.AddDate(0, 0, days))
}

func (d Date) String() string { return string(d) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = ""
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Clock is a wall-clock time carried on the wire as "15:04".
// Zero-padded and fixed-width, so string order is time order.
type Clock string

// ParseClock validates an "15:04" string.
func ParseClock(v string) (Clock, error) {
	t, err := time.Parse(layoutClock, v)
	if err != nil {
		return "", fmt.Errorf("model: bad time %q: %w", v, err)
	}
	return Clock(t.Format(layoutClock)), nil
}

// IsZero reports an unset clock.
func (c Clock) IsZero() bool { return c == "" }

// Before reports strict ordering between two clock values.
func (c Clock) Before(other Clock) bool { return c < other }

func (c Clock) String() string { return string(c) }

func (c *Clock) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*c = ""
		return nil
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
