package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for the two tables the service owns.  The UNIQUE
// primary key on vacancies.date is load-bearing: the availability check
// counts qualifying rows per range and relies on at most one row per
// calendar day.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vacancies (
		date  DATE NOT NULL,
		count INT  NOT NULL,
		PRIMARY KEY (date)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_reservations_created_at (created_at)
	) ENGINE=InnoDB`,
}

// EnsureSchema creates the vacancies and reservations tables when they
// do not exist yet.  It is idempotent and safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
