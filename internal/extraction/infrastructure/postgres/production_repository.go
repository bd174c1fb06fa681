package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	extraction "lineboard/internal/extraction/domain"
)

const defaultProductionTable = "production_records"

// ProductionRepository is a Postgres implementation for production records.
type ProductionRepository struct {
	db    DBTX
	table string
}

// NewProductionRepository constructs a repository.
func NewProductionRepository(db DBTX, opts ...ProductionOption) *ProductionRepository {
	repo := &ProductionRepository{db: db, table: defaultProductionTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ProductionOption configures the repository.
type ProductionOption func(*ProductionRepository)

// WithProductionTable overrides the default table name.
func WithProductionTable(table string) ProductionOption {
	return func(repo *ProductionRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// SaveBatch inserts the extracted records of one workbook.
func (r *ProductionRepository) SaveBatch(ctx context.Context, records []extraction.ProductionRecord) error {
	if r == nil || r.db == nil {
		return errors.New("production repo: nil db")
	}
	if len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	shift_date,
	product,
	machine_type,
	nominal_speed,
	manpower,
	start_time,
	end_time,
	duration_hours,
	pack_qty,
	waste,
	ton,
	potential_production,
	efficiency_pct,
	target_hour
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, r.table)

	for _, rec := range records {
		if _, err := r.db.ExecContext(ctx, query,
			rec.Date,
			rec.Product,
			string(rec.Machine),
			rec.NominalSpeed,
			rec.Manpower,
			rec.StartTime,
			rec.EndTime,
			rec.Duration,
			rec.PackQty,
			rec.Waste,
			rec.Ton,
			rec.PotentialProduction,
			rec.EfficiencyPct,
			rec.TargetHour,
		); err != nil {
			return err
		}
	}
	return nil
}

// ListByDateRange loads records whose shift date falls in [from, to].
func (r *ProductionRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]extraction.ProductionRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("production repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT shift_date, product, machine_type, nominal_speed, manpower, start_time, end_time,
	duration_hours, pack_qty, waste, ton, potential_production, efficiency_pct, target_hour
FROM %s
WHERE shift_date >= $1 AND shift_date <= $2
ORDER BY shift_date, machine_type, product`, r.table)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []extraction.ProductionRecord
	for rows.Next() {
		var rec extraction.ProductionRecord
		var machine string
		if err := rows.Scan(
			&rec.Date,
			&rec.Product,
			&machine,
			&rec.NominalSpeed,
			&rec.Manpower,
			&rec.StartTime,
			&rec.EndTime,
			&rec.Duration,
			&rec.PackQty,
			&rec.Waste,
			&rec.Ton,
			&rec.PotentialProduction,
			&rec.EfficiencyPct,
			&rec.TargetHour,
		); err != nil {
			return nil, err
		}
		rec.Date = rec.Date.UTC()
		rec.Machine = extraction.MachineType(machine)
		records = append(records, rec)
	}
	return records, rows.Err()
}
