package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"lineboard/internal/extraction/application"
	extraction "lineboard/internal/extraction/domain"
	"lineboard/internal/observability/metrics"
)

const maxWorkbookBytes = 32 << 20

// ProductionStore persists extracted production records.
type ProductionStore interface {
	SaveBatch(ctx context.Context, records []extraction.ProductionRecord) error
}

// DowntimeStore persists extracted downtime events.
type DowntimeStore interface {
	SaveBatch(ctx context.Context, events []extraction.DowntimeEvent) error
}

// UploadHandler accepts daily shift workbooks and stores their records.
type UploadHandler struct {
	service    *application.WorkbookService
	production ProductionStore
	downtime   DowntimeStore
	logger     *log.Logger
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(service *application.WorkbookService, production ProductionStore, downtime DowntimeStore, logger *log.Logger) (*UploadHandler, error) {
	if service == nil {
		return nil, errors.New("upload handler: nil workbook service")
	}
	if production == nil || downtime == nil {
		return nil, errors.New("upload handler: nil store")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &UploadHandler{service: service, production: production, downtime: downtime, logger: logger}, nil
}

type uploadResponse struct {
	Date              string   `json:"date"`
	Sheets            int      `json:"sheets"`
	ProductionRecords int      `json:"production_records"`
	DowntimeEvents    int      `json:"downtime_events"`
	Warnings          []string `json:"warnings"`
}

// ServeHTTP handles POST /api/v1/workbooks.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	if err := r.ParseMultipartForm(maxWorkbookBytes); err != nil {
		metrics.ObserveWorkbook(metrics.ResultError, time.Since(start))
		http.Error(w, "multipart form expected", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.ObserveWorkbook(metrics.ResultError, time.Since(start))
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxWorkbookBytes))
	if err != nil {
		metrics.ObserveWorkbook(metrics.ResultError, time.Since(start))
		http.Error(w, "read upload error", http.StatusBadRequest)
		return
	}

	result, err := h.service.Extract(r.Context(), header.Filename, data)
	if err != nil {
		metrics.ObserveWorkbook(metrics.ResultError, time.Since(start))
		h.logger.Printf("workbook %s: extract error: %v", header.Filename, err)
		http.Error(w, "workbook could not be parsed", http.StatusUnprocessableEntity)
		return
	}

	if err := h.production.SaveBatch(r.Context(), result.Production); err != nil {
		metrics.ObserveWorkbook(metrics.ResultError, time.Since(start))
		h.logger.Printf("workbook %s: save production error: %v", header.Filename, err)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if err := h.downtime.SaveBatch(r.Context(), result.Downtime); err != nil {
		metrics.ObserveWorkbook(metrics.ResultError, time.Since(start))
		h.logger.Printf("workbook %s: save downtime error: %v", header.Filename, err)
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}

	metrics.ObserveWorkbook(metrics.ResultSuccess, time.Since(start))
	metrics.AddSheets(result.Sheets)
	metrics.AddProductionRecords(len(result.Production))
	metrics.AddDowntimeEvents(len(result.Downtime))
	metrics.AddWarnings(len(result.Warnings))

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(uploadResponse{
		Date:              result.Date.Format("2006-01-02"),
		Sheets:            result.Sheets,
		ProductionRecords: len(result.Production),
		DowntimeEvents:    len(result.Downtime),
		Warnings:          warnings,
	})
}
