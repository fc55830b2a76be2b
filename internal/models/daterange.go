package models

import (
	"fmt"
	"time"
)

// DateRange is a contiguous span of calendar dates with no time-of-day
// component. Both ends are inclusive: the end date is an occupied night,
// so a checkout on day N blocks a new check-in on day N.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// ParseDate parses a calendar date in the fixed YYYY-MM-DD layout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return t, nil
}

// NewDateRange builds a range from YYYY-MM-DD strings and validates
// End > Start strictly. A single-night stay is start..start+1.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	r := DateRange{Start: s, End: e}
	if !r.Valid() {
		return DateRange{}, fmt.Errorf("end date %s must be after start date %s", end, start)
	}
	return r, nil
}

// Valid reports whether End is strictly after Start.
func (r DateRange) Valid() bool {
	return truncate(r.End).After(truncate(r.Start))
}

// Overlaps implements the closed-interval overlap test:
// r.Start <= other.End && r.End >= other.Start.
func (r DateRange) Overlaps(other DateRange) bool {
	rs, re := truncate(r.Start), truncate(r.End)
	os, oe := truncate(other.Start), truncate(other.End)
	return !rs.After(oe) && !re.Before(os)
}

// Nights returns the number of nights covered by the range.
func (r DateRange) Nights() int {
	return int(truncate(r.End).Sub(truncate(r.Start)).Hours() / 24)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
