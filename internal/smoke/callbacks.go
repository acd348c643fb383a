package smoke

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/pkg/logger"
)

type stateGraphRequest struct {
	Status string `json:"status"`
}

// submitCallbacks posts every status Rounds times using a worker pool and
// groups the responses by status.
func submitCallbacks(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) map[model.Status][]callbackResult {
	statuses := model.Statuses()
	total := len(statuses) * config.Rounds
	logger.Get().Info(ctx, "submitting state graph callbacks",
		logger.Int("callbacks", total),
		logger.Int("workers", config.Workers),
	)

	var (
		submitted  int64
		successful int64
		failed     int64
	)

	jobs := make(chan model.Status, config.Workers*WorkerChannelMultiplier)
	results := make(chan callbackResult, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for status := range jobs {
				res := submitSingleCallback(ctx, client, status)
				atomic.AddInt64(&submitted, 1)
				if res.Err != nil {
					atomic.AddInt64(&failed, 1)
				} else {
					atomic.AddInt64(&successful, 1)
				}
				if config.Verbose {
					logger.Get().Debug(ctx, "callback answered",
						logger.String("status", status.String()),
						logger.Int("bars", res.Figure.Points()),
						logger.Any("error", res.Err),
					)
				}
				results <- res
			}
		}()
	}

	// Feed statuses round-robin so repeats interleave
	go func() {
		defer close(jobs)
		for round := 0; round < config.Rounds; round++ {
			for _, s := range statuses {
				select {
				case <-ctx.Done():
					return
				case jobs <- s:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byStatus := make(map[model.Status][]callbackResult, len(statuses))
	for res := range results {
		byStatus[res.Status] = append(byStatus[res.Status], res)
	}

	stats.CallbacksSubmitted = int(atomic.LoadInt64(&submitted))
	stats.CallbacksSuccessful = int(atomic.LoadInt64(&successful))
	stats.CallbacksFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "callback submission completed",
		logger.Int("successful", stats.CallbacksSuccessful),
		logger.Int("failed", stats.CallbacksFailed),
	)
	return byStatus
}

func submitSingleCallback(ctx context.Context, client *HTTPClient, status model.Status) callbackResult {
	res := callbackResult{Status: status}
	body, err := client.Post(ctx, pathStateGraph, stateGraphRequest{Status: status.String()})
	if err != nil {
		res.Err = err
		return res
	}
	var fig chart.Figure
	if err := unmarshalJSON(body, &fig); err != nil {
		res.Err = err
		return res
	}
	res.Figure = fig
	return res
}
