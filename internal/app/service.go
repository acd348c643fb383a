// Package service provides the dashboard's application context: the loaded
// tables, the derived counters and the layout tree, plus the state-graph
// callback the HTTP API depends on.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/indiacovid/internal/adapters/repository"
	"github.com/okian/indiacovid/internal/domain/aggregate"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/layout"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/internal/domain/statusbar"
	"github.com/okian/indiacovid/pkg/logger"
	"github.com/okian/indiacovid/pkg/metrics"
)

const nanosPerMilli = 1e6

// Service implements the API dependencies for the dashboard.
//
// Everything it holds is written once by Start and only read afterwards, so
// request goroutines share it without copying.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader *repository.Loader

	// Configuration
	sources    repository.Sources
	seriesMode aggregate.SeriesMode
	title      string

	// State
	started   bool
	startedAt time.Time
	tables    *model.Tables
	counters  aggregate.Counters
	layout    *layout.Node

	stateGraphs atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSources sets the dataset file paths.
func WithSources(src repository.Sources) Option {
	return func(s *Service) {
		s.sources = src
	}
}

// WithSeriesMode sets how the day-by-day line is built.
func WithSeriesMode(mode aggregate.SeriesMode) Option {
	return func(s *Service) {
		if mode != "" {
			s.seriesMode = mode
		}
	}
}

// WithTitle overrides the page header.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}

// WithLoader replaces the dataset loader, e.g. one reading from an fs.FS.
func WithLoader(l *repository.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sources: repository.Sources{
			Age:         "data/AgeGroupDetails.csv",
			States:      "data/covid_19_india.csv",
			Individuals: "data/IndividualDetails.csv",
		},
		seriesMode: aggregate.SeriesAggregate,
		title:      layout.DefaultTitle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the datasets and builds everything the dashboard serves.
// A load failure is returned unchanged so callers can inspect the
// *repository.LoadError; the service stays unstarted.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.loader == nil {
		s.loader = repository.NewLoader(repository.WithLogger(s.logger))
	}

	s.logger.Info(ctx, "starting dashboard service...",
		logger.String("series_mode", string(s.seriesMode)),
	)

	tables, err := s.loader.Load(ctx, s.sources)
	if err != nil {
		s.logger.Error(ctx, "failed to load datasets", logger.Error(err))
		return err
	}

	counters := aggregate.Compute(tables.Individuals)
	metrics.UpdateCaseCounters(counters.Total, counters.Active, counters.Recovered, counters.Deceased)

	s.tables = tables
	s.counters = counters
	s.layout = layout.Build(layout.Input{
		Title:      s.title,
		Tables:     tables,
		Counters:   counters,
		SeriesMode: s.seriesMode,
		StateGraph: statusbar.New(tables.Individuals).Render(),
	})
	s.started = true
	s.startedAt = time.Now()

	s.logger.Info(ctx, "dashboard service started",
		logger.Int("total", counters.Total),
		logger.Int("active", counters.Active),
		logger.Int("recovered", counters.Recovered),
		logger.Int("deceased", counters.Deceased),
	)

	return nil
}

// Layout returns the tree built by Start, or nil before Start.
func (s *Service) Layout() *layout.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout
}

// Counters returns the load-time counters.
func (s *Service) Counters() aggregate.Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters
}

// StateGraph recomputes the state-wise bar chart for status. A status that
// matches no record, including one outside the dropdown options, yields a
// chart with no bars.
func (s *Service) StateGraph(ctx context.Context, status model.Status) chart.Figure {
	start := time.Now()

	s.mu.RLock()
	var records []model.IndividualRecord
	if s.tables != nil {
		records = s.tables.Individuals
	}
	s.mu.RUnlock()

	counts := statusbar.Recompute(records, status)
	fig := statusbar.Figure(status, counts)

	elapsed := float64(time.Since(start).Nanoseconds()) / nanosPerMilli
	s.stateGraphs.Add(1)
	metrics.RecordRecompute(metricsLabel(status), len(counts), elapsed)

	if s.logger != nil {
		s.logger.Debug(ctx, "state graph recomputed",
			logger.String("status", status.String()),
			logger.Int("bars", len(counts)),
			logger.Float64("duration_ms", elapsed),
		)
	}
	return fig
}

// metricsLabel keeps client supplied statuses from growing label
// cardinality.
func metricsLabel(status model.Status) string {
	if status.Valid() {
		return status.String()
	}
	return "other"
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"seriesMode":       string(s.seriesMode),
		"stateGraphServed": s.stateGraphs.Load(),
	}

	if s.started {
		stats["individuals"] = len(s.tables.Individuals)
		stats["stateRows"] = len(s.tables.States)
		stats["ageGroups"] = len(s.tables.Age)
		stats["uptime"] = fmt.Sprintf("%.0fs", time.Since(s.startedAt).Seconds())
	}

	return stats
}
