// Package smoke checks a running dashboard end to end over HTTP.
package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/indiacovid/pkg/logger"
)

// Run executes the complete smoke check.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	cfg := config.withDefaults()
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting dashboard smoke test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if _, err := client.Get(ctx, pathHealth); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}
	stats.ChecksPassed++

	// Step 2: Summary counters
	var summary Summary
	if err := client.GetJSON(ctx, pathSummary, &summary); err != nil {
		return stats, fmt.Errorf("summary retrieval failed: %w", err)
	}
	if err := verifySummary(summary); err != nil {
		return stats, err
	}
	stats.ChecksPassed++

	// Step 3: Rendered page
	page, err := client.Get(ctx, pathDashboard)
	if err != nil {
		return stats, fmt.Errorf("dashboard retrieval failed: %w", err)
	}
	if err := verifyDashboard(page, summary); err != nil {
		return stats, err
	}
	stats.ChecksPassed++

	// Step 4: Callbacks, concurrently and repeatedly
	byStatus := submitCallbacks(ctx, &cfg, client, stats)
	if err := verifyCallbacks(ctx, byStatus, summary); err != nil {
		return stats, err
	}
	stats.ChecksPassed++

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "smoke test completed successfully")
	return stats, nil
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Rounds <= 0 {
		out.Rounds = DefaultRounds
	}
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	return out
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var callbacksPerSecond float64
	if stats.Duration > 0 {
		callbacksPerSecond = float64(stats.CallbacksSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("checksPassed", stats.ChecksPassed),
		logger.Int("callbacksSubmitted", stats.CallbacksSubmitted),
		logger.Int("callbacksSuccessful", stats.CallbacksSuccessful),
		logger.Int("callbacksFailed", stats.CallbacksFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("callbacksPerSecond", callbacksPerSecond),
	)
}
