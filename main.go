package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	extractionapp "lineboard/internal/extraction/application"
	extraction "lineboard/internal/extraction/domain"
	extractionrepo "lineboard/internal/extraction/infrastructure/postgres"
	"lineboard/internal/extraction/infrastructure/xlsx"
	extractionhttp "lineboard/internal/extraction/interfaces/http"
	"lineboard/internal/observability/metrics"
	metricsapp "lineboard/internal/shiftmetrics/application"
	metricshttp "lineboard/internal/shiftmetrics/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}
	if err := extractionrepo.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatalf("db schema error: %v", err)
	}

	metrics.Init()

	extractionCfg, err := extractionapp.LoadConfig()
	if err != nil {
		logger.Fatalf("extraction config error: %v", err)
	}

	workbookService, err := extractionapp.NewWorkbookService(xlsx.NewGridSource(), extractionCfg, extraction.SystemClock{}, logger)
	if err != nil {
		logger.Fatalf("workbook service error: %v", err)
	}

	productionRepo := extractionrepo.NewProductionRepository(db)
	downtimeRepo := extractionrepo.NewDowntimeRepository(db)

	uploadHandler, err := extractionhttp.NewUploadHandler(workbookService, productionRepo, downtimeRepo, logger)
	if err != nil {
		logger.Fatalf("upload handler error: %v", err)
	}

	metricsService, err := metricsapp.NewMetricsService(productionRepo, downtimeRepo)
	if err != nil {
		logger.Fatalf("metrics service error: %v", err)
	}
	metricsHandler := metricshttp.NewMetricsHandler(metricsService)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/workbooks", uploadHandler)
	mux.Handle("/api/v1/metrics", metricsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
