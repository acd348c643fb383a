package smoke

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/indiacovid/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the global logger on stdout and, when logFile is
// set, on that file too.
func SetupLogging(logFile string, verbose bool) error {
	var w io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
	}

	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`India COVID Dashboard Smoke Test
================================

Checks a running dashboard end to end: health, summary counters, the
rendered page and the state-graph callback for every status.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the dashboard (default "http://localhost:8080")
  -rounds int
        Times each status is posted to the callback (default 2)
  -workers int
        Number of concurrent callback workers (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Also write logs to this file
  -verbose
        Log every callback response
  -help
        Show this help message

Examples:
  # Check a local dashboard
  go run ./cmd/smoke

  # Hammer the callback harder
  go run ./cmd/smoke -rounds 50 -workers 16 -url http://localhost:8080
`)
}
