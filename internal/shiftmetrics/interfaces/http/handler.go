package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lineboard/internal/observability/metrics"
	"lineboard/internal/shiftmetrics/application"
	shiftmetrics "lineboard/internal/shiftmetrics/domain"
)

const dateLayout = "2006-01-02"

// MetricsHandler serves shift-metrics queries.
type MetricsHandler struct {
	service *application.MetricsService
}

// NewMetricsHandler constructs a MetricsHandler.
func NewMetricsHandler(service *application.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: service}
}

// ServeHTTP handles GET /api/v1/metrics.
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	from, err := parseDateQuery(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if to.Before(from) {
		http.Error(w, "to must not be before from", http.StatusBadRequest)
		return
	}

	key, err := parseGroupBy(r.URL.Query().Get("group_by"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rows, err := h.service.Window(r.Context(), from, to, key)
	if err != nil {
		metrics.ObserveAggregation(metrics.ResultError, time.Since(start))
		http.Error(w, "aggregation error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveAggregation(metrics.ResultSuccess, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

func parseDateQuery(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return t.UTC(), nil
}

func parseGroupBy(value string) (shiftmetrics.GroupKey, error) {
	var key shiftmetrics.GroupKey
	if value == "" {
		return key, nil
	}
	for _, dim := range strings.Split(value, ",") {
		switch strings.TrimSpace(strings.ToLower(dim)) {
		case "machine":
			key.ByMachine = true
		case "product":
			key.ByProduct = true
		case "date", "":
			// date is always part of the key
		default:
			return key, fmt.Errorf("unknown group_by dimension %q", dim)
		}
	}
	return key, nil
}
