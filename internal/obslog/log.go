// Package obslog wraps github.com/charmbracelet/log, the retrieval
// pack's structured-logging library, so cmd/mapfcbs and the
// internal packages never reach for bare fmt.Printf.
package obslog

import (
	"os"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to stderr at the given level name
// ("debug", "info", "warn", "error"; unknown names fall back to info).
func New(levelName string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	logger.SetLevel(parseLevel(levelName))
	return logger
}

func parseLevel(name string) log.Level {
	switch name {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
