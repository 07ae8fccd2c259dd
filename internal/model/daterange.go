package model

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a date range cannot be built from the
// supplied bounds: either bound is missing, or the exclusive end does not
// fall strictly after the start once both are truncated to calendar days.
// Handlers should translate this into an HTTP 422 response.
var ErrInvalidRange = errors.New("invalid date range")

// DateRange is the normalized span of calendar days a booking occupies.
// Clients supply a start instant (first occupied day) and an end instant
// (the checkout day, which is never occupied).  Both bounds are truncated
// to UTC midnight on construction, so the occupied days are exactly
// start .. end-1day inclusive.  Normalizing once here keeps the
// availability check and the capacity decrement working on the same day
// set; every off-by-one in this domain comes from doing it twice.
type DateRange struct {
	start time.Time // first occupied day, UTC midnight
	end   time.Time // exclusive checkout day, UTC midnight
}

// NewDateRange builds a DateRange from two instants.  It fails with
// ErrInvalidRange when either bound is the zero time or when end <= start
// after day truncation.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidRange
	}
	s := truncateToDay(start)
	e := truncateToDay(end)
	if !e.After(s) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

// truncateToDay drops the time-of-day component, keeping the calendar date
// in UTC.
func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Start returns the first occupied day (UTC midnight).
func (r DateRange) Start() time.Time { return r.start }

// End returns the client-facing exclusive end, i.e. the checkout day.
// Reservation rows persist this bound, not the last occupied day.
func (r DateRange) End() time.Time { return r.end }

// LastOccupied returns the final day the booking actually occupies,
// one day before the checkout day.
func (r DateRange) LastOccupied() time.Time { return r.end.AddDate(0, 0, -1) }

// Count returns the number of occupied days.  It is always >= 1 for a
// range built by NewDateRange.
func (r DateRange) Count() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// OccupiedDates returns the inclusive sequence of occupied calendar days
// from Start through LastOccupied.
func (r DateRange) OccupiedDates() []time.Time {
	dates := make([]time.Time, 0, r.Count())
	for d := r.start; d.Before(r.end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
