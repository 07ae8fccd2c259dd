package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/vacancy-booking/internal/model"
)

func mustRange(t *testing.T, start time.Time, days int) model.DateRange {
	t.Helper()
	rng, err := model.NewDateRange(start, start.AddDate(0, 0, days))
	if err != nil {
		t.Fatalf("building range: %v", err)
	}
	return rng
}

const availabilityQuery = `SELECT COUNT(*) FROM vacancies WHERE date >= ? AND date <= ? AND count >= ? FOR UPDATE`

func TestIsAvailableTx_AllDaysCovered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rng := mustRange(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), 3)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(availabilityQuery)).
		WithArgs("2026-09-10", "2026-09-12", 2).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	ok, err := NewVacancyRepo(db).IsAvailableTx(context.Background(), tx, rng, 2)
	if err != nil {
		t.Fatalf("IsAvailableTx: %v", err)
	}
	if !ok {
		t.Fatal("IsAvailableTx = false, want true")
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIsAvailableTx_MissingDayFailsCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// Three-day range but only two qualifying rows: one day has no
	// vacancy row at all, so the count falls short.
	rng := mustRange(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), 3)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(availabilityQuery)).
		WithArgs("2026-09-10", "2026-09-12", 1).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))
	mock.ExpectRollback()

	tx, _ := db.BeginTx(context.Background(), nil)
	ok, err := NewVacancyRepo(db).IsAvailableTx(context.Background(), tx, rng, 1)
	if err != nil {
		t.Fatalf("IsAvailableTx: %v", err)
	}
	if ok {
		t.Fatal("IsAvailableTx = true, want false for a range with a missing day")
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDecreaseTx_SingleBulkStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rng := mustRange(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), 2)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vacancies SET count = count - ? WHERE date IN (?,?)`)).
		WithArgs(3, "2026-09-10", "2026-09-11").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, _ := db.BeginTx(context.Background(), nil)
	if err := NewVacancyRepo(db).DecreaseTx(context.Background(), tx, rng, 3); err != nil {
		t.Fatalf("DecreaseTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO vacancies (date, count) VALUES (?, ?) ON DUPLICATE KEY UPDATE count = VALUES(count)`)).
		WithArgs("2026-09-10", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewVacancyRepo(db).Upsert(context.Background(), time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	d1 := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT date, count FROM vacancies WHERE date >= ? AND date <= ? ORDER BY date`)).
		WithArgs("2026-09-10", "2026-09-12").
		WillReturnRows(sqlmock.NewRows([]string{"date", "count"}).AddRow(d1, 10).AddRow(d2, 4))

	vacancies, err := NewVacancyRepo(db).ListRange(context.Background(), d1, d1.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(vacancies) != 2 {
		t.Fatalf("got %d rows, want 2", len(vacancies))
	}
	if vacancies[1].Count != 4 || !vacancies[1].Date.Equal(d2) {
		t.Fatalf("unexpected second row: %+v", vacancies[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
