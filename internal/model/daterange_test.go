package model

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange_SingleNightOccupiesOneDay(t *testing.T) {
	start := day(2026, 9, 10)
	rng, err := NewDateRange(start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}
	dates := rng.OccupiedDates()
	if len(dates) != 1 || !dates[0].Equal(start) {
		t.Fatalf("OccupiedDates() = %v, want [%v]", dates, start)
	}
	if !rng.LastOccupied().Equal(start) {
		t.Fatalf("LastOccupied() = %v, want %v", rng.LastOccupied(), start)
	}
}

func TestNewDateRange_CheckoutDayExcluded(t *testing.T) {
	start := day(2026, 9, 10)
	end := start.AddDate(0, 0, 3)
	rng, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
	want := []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}
	dates := rng.OccupiedDates()
	if len(dates) != len(want) {
		t.Fatalf("OccupiedDates() returned %d days, want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("OccupiedDates()[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
	// The persisted bounds remain the client-facing pair.
	if !rng.Start().Equal(start) || !rng.End().Equal(end) {
		t.Errorf("Start/End = %v/%v, want %v/%v", rng.Start(), rng.End(), start, end)
	}
}

func TestNewDateRange_TruncatesTimeOfDay(t *testing.T) {
	start := time.Date(2026, 9, 10, 15, 30, 0, 0, time.UTC)
	end := time.Date(2026, 9, 12, 1, 0, 0, 0, time.UTC)
	rng, err := NewDateRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	if !rng.Start().Equal(day(2026, 9, 10)) {
		t.Errorf("Start() = %v, want midnight", rng.Start())
	}
}

func TestNewDateRange_ConvertsToUTCBeforeTruncation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 01:30 local on the 11th is 23:30 UTC on the 10th.
	start := time.Date(2026, 9, 11, 1, 30, 0, 0, loc)
	rng, err := NewDateRange(start, day(2026, 9, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rng.Start().Equal(day(2026, 9, 10)) {
		t.Fatalf("Start() = %v, want 2026-09-10 UTC", rng.Start())
	}
}

func TestNewDateRange_Invalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"zero start", time.Time{}, day(2026, 9, 10)},
		{"zero end", day(2026, 9, 10), time.Time{}},
		{"end before start", day(2026, 9, 12), day(2026, 9, 10)},
		{"end equals start", day(2026, 9, 10), day(2026, 9, 10)},
		{"same day after truncation", day(2026, 9, 10).Add(2 * time.Hour), day(2026, 9, 10).Add(20 * time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDateRange(tc.start, tc.end); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("error = %v, want ErrInvalidRange", err)
			}
		})
	}
}
