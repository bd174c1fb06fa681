package postgres

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB / *sql.Tx the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EnsureSchema creates the record tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db DBTX) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS production_records (
	id BIGSERIAL PRIMARY KEY,
	shift_date DATE NOT NULL,
	product TEXT NOT NULL,
	machine_type TEXT NOT NULL,
	nominal_speed DOUBLE PRECISION NOT NULL DEFAULT 0,
	manpower DOUBLE PRECISION NOT NULL DEFAULT 0,
	start_time DOUBLE PRECISION NOT NULL DEFAULT 0,
	end_time DOUBLE PRECISION NOT NULL DEFAULT 0,
	duration_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	pack_qty DOUBLE PRECISION NOT NULL DEFAULT 0,
	waste DOUBLE PRECISION NOT NULL DEFAULT 0,
	ton DOUBLE PRECISION NOT NULL DEFAULT 0,
	potential_production DOUBLE PRECISION NOT NULL DEFAULT 0,
	efficiency_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
	target_hour DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_production_records_shift_date ON production_records (shift_date)`,
		`CREATE TABLE IF NOT EXISTS downtime_events (
	id BIGSERIAL PRIMARY KEY,
	shift_date DATE NOT NULL,
	machine_type TEXT NOT NULL,
	error_code TEXT NOT NULL,
	duration_minutes DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_downtime_events_shift_date ON downtime_events (shift_date)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
