package cmdlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/zach-sndr/agentic-social/internal/logging"
	"github.com/zach-sndr/agentic-social/internal/metrics"
)

// Run executes f as command cmd, tagging log lines with a fresh run id and
// recording run/error counters.
func Run(cmd string, f func() error) error {
	runID := uuid.NewString()
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f()
	fields := map[string]any{"run_id": runID, "duration_ms": time.Since(start).Milliseconds()}
	if err != nil {
		metrics.IncCommandError(cmd)
		fields["error"] = err.Error()
		logging.Error(cmd+"_error", fields)
	} else {
		logging.Info(cmd+"_ok", fields)
	}
	return err
}
