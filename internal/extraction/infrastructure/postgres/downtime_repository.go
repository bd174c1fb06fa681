package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	extraction "lineboard/internal/extraction/domain"
)

const defaultDowntimeTable = "downtime_events"

// DowntimeRepository is a Postgres implementation for downtime events.
type DowntimeRepository struct {
	db    DBTX
	table string
}

// NewDowntimeRepository constructs a repository.
func NewDowntimeRepository(db DBTX, opts ...DowntimeOption) *DowntimeRepository {
	repo := &DowntimeRepository{db: db, table: defaultDowntimeTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// DowntimeOption configures the repository.
type DowntimeOption func(*DowntimeRepository)

// WithDowntimeTable overrides the default table name.
func WithDowntimeTable(table string) DowntimeOption {
	return func(repo *DowntimeRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// SaveBatch inserts the extracted events of one workbook.
func (r *DowntimeRepository) SaveBatch(ctx context.Context, events []extraction.DowntimeEvent) error {
	if r == nil || r.db == nil {
		return errors.New("downtime repo: nil db")
	}
	if len(events) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
INSERT INTO %s (shift_date, machine_type, error_code, duration_minutes)
VALUES ($1, $2, $3, $4)`, r.table)

	for _, ev := range events {
		if _, err := r.db.ExecContext(ctx, query,
			ev.Date,
			string(ev.Machine),
			ev.ErrorCode,
			ev.DurationMinutes,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListByDateRange loads events whose shift date falls in [from, to].
func (r *DowntimeRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]extraction.DowntimeEvent, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("downtime repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT shift_date, machine_type, error_code, duration_minutes
FROM %s
WHERE shift_date >= $1 AND shift_date <= $2
ORDER BY shift_date, machine_type, error_code`, r.table)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []extraction.DowntimeEvent
	for rows.Next() {
		var ev extraction.DowntimeEvent
		var machine string
		if err := rows.Scan(&ev.Date, &machine, &ev.ErrorCode, &ev.DurationMinutes); err != nil {
			return nil, err
		}
		ev.Date = ev.Date.UTC()
		ev.Machine = extraction.MachineType(machine)
		events = append(events, ev)
	}
	return events, rows.Err()
}
