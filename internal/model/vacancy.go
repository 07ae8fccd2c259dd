package model

import "time"

// Vacancy holds the bookable capacity for a single calendar day.
// There is at most one row per date (the date column is the primary
// key), which is what keeps the set-based availability check sound:
// counting qualifying rows can never overcount a day.
//
// Fields:
//  Date  – calendar day, stored as a DATE column, UTC midnight in Go.
//  Count – remaining bookable units for that day; never negative in a
//          correct system.  A negative value is a defect signal, not a
//          state the code clamps away.
type Vacancy struct {
	Date  time.Time `json:"date"`  // vacancies.date
	Count int       `json:"count"` // vacancies.count
}
