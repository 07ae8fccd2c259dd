// Package queue defines message payloads exchanged over the message
// broker, the publisher used by the booking flow and the background
// consumer that turns confirmations into an audit log.
package queue

// BookingConfirmedEvent is published when a booking commits.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type BookingConfirmedEvent struct {
	FirstReservationID int64  `json:"first_reservation_id"`
	Count              int    `json:"count"`
	StartDate          string `json:"start_date"` // first occupied day, YYYY-MM-DD
	EndDate            string `json:"end_date"`   // exclusive checkout day, YYYY-MM-DD
	Nights             int    `json:"nights"`     // occupied day count
	ConfirmedAt        string `json:"confirmed_at"`
}
