// Package repository implements data access for vacancies and
// reservations on top of database/sql.  Methods that take a *sql.Tx run
// inside a caller-owned transaction; everything else runs on the pool.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/vacancy-booking/internal/model"
)

// dateFormat is how DATE columns are rendered in query arguments.  The
// driver is configured with parseTime=true and loc=UTC, so values scan
// back as time.Time at UTC midnight.
const dateFormat = "2006-01-02"

// VacancyRepo provides access to the vacancies table: the per-day
// capacity ledger.  Methods suffixed Tx operate inside a caller-owned
// transaction; the caller must commit or roll back.  The availability
// check and the decrement for one booking must share a transaction,
// otherwise a concurrent booking can slip between them and oversell.
type VacancyRepo struct {
	db *sql.DB
}

// NewVacancyRepo returns a new VacancyRepo bound to the given database.
func NewVacancyRepo(db *sql.DB) *VacancyRepo { return &VacancyRepo{db: db} }

// IsAvailableTx reports whether every occupied day in rng has a vacancy
// row with at least `requested` remaining units.  It is one set-based
// query over the whole range, not a per-day round trip: because the date
// column is unique, the range is fully covered exactly when the number
// of qualifying rows reaches rng.Count().  A day with no row at all
// contributes nothing to the count and therefore fails the check.
//
// The SELECT runs FOR UPDATE so the touched day rows stay locked until
// the caller's transaction finishes.  A concurrent booking on an
// overlapping range blocks here until this one commits or rolls back,
// which closes the check-then-decrement race.
func (r *VacancyRepo) IsAvailableTx(ctx context.Context, tx *sql.Tx, rng model.DateRange, requested int) (bool, error) {
	const q = `SELECT COUNT(*) FROM vacancies WHERE date >= ? AND date <= ? AND count >= ? FOR UPDATE`
	var n int
	err := tx.QueryRowContext(ctx, q,
		rng.Start().Format(dateFormat),
		rng.LastOccupied().Format(dateFormat),
		requested,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n >= rng.Count(), nil
}

// DecreaseTx subtracts amount from the capacity of every occupied day in
// rng as a single parameterized bulk UPDATE.  Ranges can be arbitrarily
// long, so issuing one statement instead of N row updates matters.  Days
// without a vacancy row are left alone (no row is created); a correct
// caller only reaches this after IsAvailableTx succeeded in the same
// transaction, which already rejected such ranges.
//
// Sufficiency is deliberately not re-validated here.  Capacity going
// negative would be a caller defect and should stay visible as one.
func (r *VacancyRepo) DecreaseTx(ctx context.Context, tx *sql.Tx, rng model.DateRange, amount int) error {
	dates := rng.OccupiedDates()
	placeholders := make([]string, 0, len(dates))
	args := make([]interface{}, 0, len(dates)+1)
	args = append(args, amount)
	for _, d := range dates {
		placeholders = append(placeholders, "?")
		args = append(args, d.Format(dateFormat))
	}
	query := `UPDATE vacancies SET count = count - ? WHERE date IN (` + strings.Join(placeholders, ",") + `)`
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Upsert creates or replaces the capacity for a single day.  This is the
// administrative seeding path; the booking flow never inserts vacancy
// rows.
func (r *VacancyRepo) Upsert(ctx context.Context, date time.Time, count int) error {
	const q = `INSERT INTO vacancies (date, count) VALUES (?, ?) ON DUPLICATE KEY UPDATE count = VALUES(count)`
	_, err := r.db.ExecContext(ctx, q, date.UTC().Format(dateFormat), count)
	return err
}

// ListRange returns the vacancy rows between from and to inclusive,
// ordered by date.  Days without a row are simply absent from the
// result; callers that care about gaps must compare against the day
// span themselves.
func (r *VacancyRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.Vacancy, error) {
	const q = `SELECT date, count FROM vacancies WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, from.UTC().Format(dateFormat), to.UTC().Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	vacancies := make([]model.Vacancy, 0)
	for rows.Next() {
		var v model.Vacancy
		if err := rows.Scan(&v.Date, &v.Count); err != nil {
			return nil, err
		}
		vacancies = append(vacancies, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vacancies, nil
}
