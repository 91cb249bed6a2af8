package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// installHooks routes pipeline, cache and HTTP events to the logger when it
// runs at debug level, and silences them otherwise.
func installHooks(logger *log.Logger) {
	if logger.GetLevel() > log.DebugLevel {
		observability.Reset()
		return
	}
	hooks := observability.NewLogHooks(logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}
