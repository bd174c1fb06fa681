package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	extraction "lineboard/internal/extraction/domain"
)

// GridSource materializes raw workbook bytes into per-sheet grids.
type GridSource interface {
	Grids(data []byte) ([]extraction.SheetGrid, error)
}

// WorkbookResult is everything extracted from one uploaded workbook.
type WorkbookResult struct {
	Date       time.Time
	Sheets     int
	Production []extraction.ProductionRecord
	Downtime   []extraction.DowntimeEvent
	Warnings   []string
}

// WorkbookService extracts production runs and downtime events from daily
// shift workbooks, one sheet per machine.
type WorkbookService struct {
	source GridSource
	config Config
	clock  extraction.Clock
	logger *log.Logger
}

// NewWorkbookService constructs a WorkbookService.
func NewWorkbookService(source GridSource, config Config, clock extraction.Clock, logger *log.Logger) (*WorkbookService, error) {
	if source == nil {
		return nil, errors.New("workbook service: nil grid source")
	}
	if clock == nil {
		clock = extraction.SystemClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &WorkbookService{source: source, config: config, clock: clock, logger: logger}, nil
}

// Extract parses every sheet of the workbook. Sheets are independent, so
// they fan out across workers and the results are concatenated once all
// workers finish; downstream aggregation is order-independent. The only
// fatal condition is the grid source failing to produce grids at all.
func (s *WorkbookService) Extract(ctx context.Context, fileName string, data []byte) (*WorkbookResult, error) {
	grids, err := s.source.Grids(data)
	if err != nil {
		return nil, fmt.Errorf("workbook %s: %w", fileName, err)
	}

	date := extraction.ResolveShiftDate(fileName, s.clock)

	var recorder extraction.WarningRecorder
	producer := extraction.NewProductionExtractor(s.config.ProductionLayout(), &recorder)
	downtimer := extraction.NewDowntimeExtractor(s.config.DowntimeLayout())

	workers := s.config.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(grids) {
		workers = len(grids)
	}

	jobs := make(chan extraction.SheetGrid)
	var (
		mu         sync.Mutex
		production []extraction.ProductionRecord
		downtime   []extraction.DowntimeEvent
		wg         sync.WaitGroup
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for sheet := range jobs {
				records := producer.Extract(sheet.Grid, sheet.Name, fileName, date)
				events := downtimer.Extract(sheet.Grid, sheet.Name, date)
				mu.Lock()
				production = append(production, records...)
				downtime = append(downtime, events...)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, sheet := range grids {
		select {
		case jobs <- sheet:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Printf("workbook %s: %d sheets, %d production records, %d downtime events, %d warnings",
		fileName, len(grids), len(production), len(downtime), len(recorder.Warnings()))

	return &WorkbookResult{
		Date:       date,
		Sheets:     len(grids),
		Production: production,
		Downtime:   downtime,
		Warnings:   recorder.Warnings(),
	}, nil
}
