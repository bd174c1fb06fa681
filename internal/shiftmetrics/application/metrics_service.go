package application

import (
	"context"
	"errors"
	"time"

	extraction "lineboard/internal/extraction/domain"
	shiftmetrics "lineboard/internal/shiftmetrics/domain"
)

// ProductionReader loads production records for an aggregation window.
type ProductionReader interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]extraction.ProductionRecord, error)
}

// DowntimeReader loads downtime events for an aggregation window.
type DowntimeReader interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]extraction.DowntimeEvent, error)
}

// MetricsService computes shift metrics over stored records.
type MetricsService struct {
	production ProductionReader
	downtime   DowntimeReader
}

// NewMetricsService constructs a MetricsService.
func NewMetricsService(production ProductionReader, downtime DowntimeReader) (*MetricsService, error) {
	if production == nil {
		return nil, errors.New("metrics service: nil production reader")
	}
	if downtime == nil {
		return nil, errors.New("metrics service: nil downtime reader")
	}
	return &MetricsService{production: production, downtime: downtime}, nil
}

// Window aggregates all records with a shift date in [from, to].
func (s *MetricsService) Window(ctx context.Context, from, to time.Time, key shiftmetrics.GroupKey) ([]shiftmetrics.DailyMetrics, error) {
	if to.Before(from) {
		return nil, errors.New("metrics service: to before from")
	}

	production, err := s.production.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	downtime, err := s.downtime.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return shiftmetrics.Aggregate(production, downtime, key), nil
}
