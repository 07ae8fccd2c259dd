package model

import "time"

// Reservation records one booked unit of capacity over a contiguous date
// range.  A booking for N units produces N identical rows rather than a
// single row with a multiplicity column, so that any future per-unit
// operation (cancellation, audit) stays uniform.
//
// Reservations are immutable historical facts: they do not reference
// vacancy rows, because the range was validated against capacity inside
// the same transaction that created them.
//
// Fields:
//  ID        – primary key identifier.
//  StartDate – first occupied day.
//  EndDate   – exclusive checkout day, one past the last occupied night.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64    `json:"id"`         // reservations.id
	StartDate time.Time `json:"start_date"` // reservations.start_date
	EndDate   time.Time `json:"end_date"`   // reservations.end_date
	CreatedAt time.Time `json:"created_at"` // reservations.created_at
	UpdatedAt time.Time `json:"updated_at"` // reservations.updated_at
}
