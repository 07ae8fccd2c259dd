// Package service orchestrates the booking flow: range normalization,
// the locked availability check and the transactional write of
// reservation rows plus capacity decrements.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/vacancy-booking/internal/model"
	"github.com/iliyamo/vacancy-booking/internal/queue"
)

// ErrInsufficientCapacity is returned when at least one day in the
// requested range lacks enough remaining capacity.  The check is bulk,
// so the error never names which day failed.  Handlers should translate
// this into an HTTP 422 response; no writes have been performed.
var ErrInsufficientCapacity = errors.New("insufficient capacity")

// ErrTransactionConflict is returned when concurrent bookings kept
// interfering (deadlock or lock wait timeout) and the internal retries
// were exhausted.  It is a transient server-side condition, distinct
// from the two client errors; handlers should translate it into an
// HTTP 503 response.
var ErrTransactionConflict = errors.New("transaction conflict")

// maxCommitAttempts bounds the retry loop around the commit transaction.
const maxCommitAttempts = 3

// retryBaseDelay is the initial backoff between commit attempts; it
// doubles after each conflicted attempt.
const retryBaseDelay = 50 * time.Millisecond

// VacancyLedger is the slice of the vacancy repository the booking flow
// needs: a locked availability check and a bulk decrement, both bound to
// the caller's transaction.
type VacancyLedger interface {
	IsAvailableTx(ctx context.Context, tx *sql.Tx, rng model.DateRange, requested int) (bool, error)
	DecreaseTx(ctx context.Context, tx *sql.Tx, rng model.DateRange, amount int) error
}

// ReservationBook is the slice of the reservation repository the booking
// flow needs.
type ReservationBook interface {
	CreateManyTx(ctx context.Context, tx *sql.Tx, rng model.DateRange, count int) (int64, error)
	ListPage(ctx context.Context, perPage, page int) ([]model.Reservation, int, error)
}

// PublishFunc delivers a booking-confirmed event after a successful
// commit.  Delivery is best effort; implementations must not block the
// request path for long and should swallow their own failures.
type PublishFunc func(ctx context.Context, event queue.BookingConfirmedEvent)

// BookingService coordinates a booking request end to end.  It owns the
// transaction boundary: the availability check and the write pair run
// inside one transaction so that no interleaving of concurrent requests
// can oversell a day or leave reservations without their decrements.
type BookingService struct {
	db           *sql.DB
	vacancies    VacancyLedger
	reservations ReservationBook
	publish      PublishFunc // optional; nil disables event publishing
}

// NewBookingService constructs a BookingService.  db, vacancies and
// reservations must be non-nil; publish may be nil when no broker is
// configured.
func NewBookingService(db *sql.DB, vacancies VacancyLedger, reservations ReservationBook, publish PublishFunc) *BookingService {
	if db == nil || vacancies == nil || reservations == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		db:           db,
		vacancies:    vacancies,
		reservations: reservations,
		publish:      publish,
	}
}

// BookingResult describes a committed booking.
type BookingResult struct {
	FirstReservationID int64           // ID of the first of the inserted rows
	Created            int             // number of reservation rows created
	Range              model.DateRange // normalized range the rows were stamped with
}

// Book reserves count units over [start, end) where end is the checkout
// day.  The flow is: validate the range, then check-and-commit inside a
// single transaction.  The availability check takes row locks, so it is
// re-validated under those locks on every attempt; a failed check
// performs zero writes.  Deadlocks and lock wait timeouts are retried
// with backoff before surfacing as ErrTransactionConflict.
func (s *BookingService) Book(ctx context.Context, start, end time.Time, count int) (*BookingResult, error) {
	rng, err := model.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	var result *BookingResult
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		result, err = s.bookOnce(ctx, rng, count)
		if err == nil {
			break
		}
		if !isLockConflict(err) {
			return nil, err
		}
		if attempt >= maxCommitAttempts {
			log.Printf("booking: giving up after %d conflicted attempts: %v", attempt, err)
			return nil, ErrTransactionConflict
		}
		log.Printf("booking: attempt %d hit a lock conflict, retrying in %s", attempt, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay *= 2
	}

	if s.publish != nil {
		s.publish(ctx, queue.BookingConfirmedEvent{
			FirstReservationID: result.FirstReservationID,
			Count:              result.Created,
			StartDate:          rng.Start().Format("2006-01-02"),
			EndDate:            rng.End().Format("2006-01-02"),
			Nights:             rng.Count(),
			ConfirmedAt:        time.Now().UTC().Format(time.RFC3339),
		})
	}
	return result, nil
}

// bookOnce runs one check-and-commit attempt in its own transaction.
// Every exit path either commits or rolls back; a failure anywhere
// leaves zero side effects.
func (s *BookingService) bookOnce(ctx context.Context, rng model.DateRange, count int) (*BookingResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Locking read: holds the touched day rows until commit/rollback.
	ok, err := s.vacancies.IsAvailableTx(ctx, tx, rng, count)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientCapacity
	}

	firstID, err := s.reservations.CreateManyTx(ctx, tx, rng, count)
	if err != nil {
		return nil, err
	}
	if err := s.vacancies.DecreaseTx(ctx, tx, rng, count); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &BookingResult{FirstReservationID: firstID, Created: count, Range: rng}, nil
}

// List returns one newest-first page of reservations plus the total
// count.  It is a thin read path with no locking concerns.
func (s *BookingService) List(ctx context.Context, perPage, page int) ([]model.Reservation, int, error) {
	return s.reservations.ListPage(ctx, perPage, page)
}

// MySQL error numbers for InnoDB lock interference.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// isLockConflict reports whether err is a retryable lock conflict
// reported by the MySQL server.
func isLockConflict(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == mysqlErrDeadlock || me.Number == mysqlErrLockWaitTimeout
}
