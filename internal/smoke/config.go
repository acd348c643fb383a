package smoke

import (
	"time"

	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the dashboard
	Rounds  int           // Times each status is posted to the callback
	Workers int           // Concurrent callback workers
	Timeout time.Duration // HTTP request timeout
	LogFile string        // Optional log file, in addition to stdout
	Verbose bool          // Log every callback response
}

// Summary mirrors GET /api/summary.
type Summary struct {
	Total        int    `json:"total"`
	Active       int    `json:"active"`
	Recovered    int    `json:"recovered"`
	Deceased     int    `json:"deceased"`
	RecoveryRate string `json:"recovery_rate"`
	FatalityRate string `json:"fatality_rate"`
}

// callbackResult is one state-graph response.
type callbackResult struct {
	Status model.Status
	Figure chart.Figure
	Err    error
}

// Stats holds run statistics.
type Stats struct {
	CallbacksSubmitted  int
	CallbacksSuccessful int
	CallbacksFailed     int
	ChecksPassed        int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
