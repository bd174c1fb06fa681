package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	extraction "lineboard/internal/extraction/domain"
	"lineboard/internal/shiftmetrics/application"
)

type stubProductionReader struct {
	records []extraction.ProductionRecord
}

func (s stubProductionReader) ListByDateRange(_ context.Context, _, _ time.Time) ([]extraction.ProductionRecord, error) {
	return s.records, nil
}

type stubDowntimeReader struct {
	events []extraction.DowntimeEvent
}

func (s stubDowntimeReader) ListByDateRange(_ context.Context, _, _ time.Time) ([]extraction.DowntimeEvent, error) {
	return s.events, nil
}

func newMetricsHandler(t *testing.T, production []extraction.ProductionRecord, downtime []extraction.DowntimeEvent) *MetricsHandler {
	t.Helper()
	service, err := application.NewMetricsService(stubProductionReader{records: production}, stubDowntimeReader{events: downtime})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return NewMetricsHandler(service)
}

func TestMetricsHandlerAggregates(t *testing.T) {
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	production := []extraction.ProductionRecord{
		{Date: date, Machine: extraction.MachineGasti, Product: "Gasti A", TargetHour: 10, Duration: 16, PackQty: 10000},
	}

	handler := newMetricsHandler(t, production, nil)
	req := httptest.NewRequest("GET", "/api/v1/metrics?from=2025-06-01&to=2025-06-30&group_by=machine", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0]["machine"] != "GASTI" {
		t.Fatalf("machine: %v", rows[0]["machine"])
	}
	if got := rows[0]["line_efficiency_pct"].(float64); got != 62.5 {
		t.Fatalf("line efficiency: %v", got)
	}
}

func TestMetricsHandlerValidation(t *testing.T) {
	handler := newMetricsHandler(t, nil, nil)

	cases := []string{
		"/api/v1/metrics",                                    // missing dates
		"/api/v1/metrics?from=2025-06-01",                    // missing to
		"/api/v1/metrics?from=junk&to=2025-06-30",            // bad date
		"/api/v1/metrics?from=2025-06-30&to=2025-06-01",      // inverted window
		"/api/v1/metrics?from=2025-06-01&to=2025-06-30&group_by=station", // unknown dimension
	}
	for _, target := range cases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
		if rec.Code != 400 {
			t.Fatalf("%s: got %d want 400", target, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/metrics", nil))
	if rec.Code != 405 {
		t.Fatalf("method: got %d want 405", rec.Code)
	}
}
