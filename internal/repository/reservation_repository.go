package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/vacancy-booking/internal/model"
)

// ReservationRepo provides access to the reservations table.  Rows are
// write-once: they are created in bulk inside the booking transaction
// and never mutated afterwards.  All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// CreateManyTx inserts count reservation rows for the given range in a
// single bulk statement.  Every row carries the same client-facing
// bounds: the first occupied day and the exclusive checkout day, not the
// internal inclusive day set.  Creation timestamps are set by the
// database.  It returns the ID of the first inserted row.  The caller
// owns the transaction and must commit or roll back.
func (r *ReservationRepo) CreateManyTx(ctx context.Context, tx *sql.Tx, rng model.DateRange, count int) (int64, error) {
	values := make([]string, 0, count)
	args := make([]interface{}, 0, count*2)
	start := rng.Start().Format(dateFormat)
	end := rng.End().Format(dateFormat)
	for i := 0; i < count; i++ {
		values = append(values, "(?, ?)")
		args = append(args, start, end)
	}
	query := `INSERT INTO reservations (start_date, end_date) VALUES ` + strings.Join(values, ",")
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPage returns one page of reservations ordered newest-first along
// with the total row count.  Page numbers start at 1.  The secondary
// sort on id keeps ordering deterministic when many rows share one
// creation timestamp, which bulk inserts guarantee they do.
func (r *ReservationRepo) ListPage(ctx context.Context, perPage, page int) ([]model.Reservation, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&total); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * perPage
	const q = `SELECT id, start_date, end_date, created_at, updated_at FROM reservations ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0, perPage)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.StartDate, &res.EndDate, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}
