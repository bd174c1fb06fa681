package extraction

import (
	"fmt"
	"log"
	"sync"
)

// Diagnostics receives non-fatal structural warnings from the extractors.
// Warnings never abort a batch; callers decide whether to surface them.
type Diagnostics interface {
	Warnf(format string, args ...any)
}

// NopDiagnostics discards all warnings.
type NopDiagnostics struct{}

// Warnf discards the warning.
func (NopDiagnostics) Warnf(string, ...any) {}

// LoggerDiagnostics writes warnings to a standard logger.
type LoggerDiagnostics struct {
	logger *log.Logger
}

// NewLoggerDiagnostics constructs a logger-backed sink.
func NewLoggerDiagnostics(logger *log.Logger) *LoggerDiagnostics {
	return &LoggerDiagnostics{logger: logger}
}

// Warnf logs the warning.
func (d *LoggerDiagnostics) Warnf(format string, args ...any) {
	if d == nil || d.logger == nil {
		return
	}
	d.logger.Printf("extraction warning: "+format, args...)
}

// WarningRecorder collects warnings for reporting back to a caller.
// Safe for concurrent use by parallel sheet workers.
type WarningRecorder struct {
	mu       sync.Mutex
	warnings []string
}

// Warnf records a warning.
func (r *WarningRecorder) Warnf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns a copy of the recorded warnings.
func (r *WarningRecorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}
