// Package repository loads the dashboard's three CSV datasets into
// immutable in-memory tables.
package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/pkg/logger"
	"github.com/okian/indiacovid/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Dataset names used in errors, logs and metrics.
const (
	DatasetAge         = "age"
	DatasetStates      = "states"
	DatasetIndividuals = "individuals"
)

// Column names required in the source files.
const (
	colAgeGroup      = "AgeGroup"
	colTotalCases    = "TotalCases"
	colDate          = "Date"
	colConfirmed     = "Confirmed"
	colCurrentStatus = "current_status"
	colDetectedState = "detected_state"
)

// State series files name the region column differently across releases.
var stateColumns = []string{"State", "State/UnionTerritory"}

const (
	utf8BOM       = "\ufeff"
	nanosPerMilli = 1e6
)

// Sources names the three CSV files.
type Sources struct {
	Age         string
	States      string
	Individuals string
}

// Loader reads Sources into model.Tables.
type Loader struct {
	logger logger.Logger
	open   func(name string) (io.ReadCloser, error)
}

// NewLoader creates a Loader reading from the OS filesystem by default.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		open: func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get()
	}
	return l
}

// Load reads all three datasets concurrently. The first failure cancels the
// others and is returned as a *LoadError; no partial tables are returned.
func (l *Loader) Load(ctx context.Context, src Sources) (*model.Tables, error) {
	var tables model.Tables

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := load(gctx, l, DatasetAge, src.Age, parseAge)
		tables.Age = rows
		return err
	})
	g.Go(func() error {
		rows, err := load(gctx, l, DatasetStates, src.States, parseStates)
		tables.States = rows
		return err
	})
	g.Go(func() error {
		rows, err := load(gctx, l, DatasetIndividuals, src.Individuals, parseIndividuals)
		tables.Individuals = rows
		return err
	})
	if err := g.Wait(); err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			metrics.RecordDatasetLoadError(le.Dataset, le.reason())
		}
		return nil, err
	}
	return &tables, nil
}

// load opens path and hands it to parse, timing and logging the result.
func load[T any](ctx context.Context, l *Loader, dataset, path string, parse func(context.Context, *table) ([]T, error)) ([]T, error) {
	start := time.Now()
	wrap := func(line int, err error) error {
		return &LoadError{Dataset: dataset, Path: path, Line: line, Err: err}
	}

	if strings.TrimSpace(path) == "" {
		return nil, wrap(0, fmt.Errorf("%w: no path configured", ErrMissingSource))
	}
	f, err := l.open(path)
	if err != nil {
		return nil, wrap(0, fmt.Errorf("%w: %v", ErrMissingSource, err))
	}
	defer func() { _ = f.Close() }()

	t, err := newTable(f)
	if err != nil {
		return nil, wrap(1, err)
	}
	rows, err := parse(ctx, t)
	if err != nil {
		var le *lineError
		if errors.As(err, &le) {
			return nil, wrap(le.line, le.err)
		}
		return nil, wrap(0, err)
	}

	elapsed := float64(time.Since(start).Nanoseconds()) / nanosPerMilli
	metrics.RecordDatasetLoaded(dataset, len(rows), elapsed)
	l.logger.Info(ctx, "dataset loaded",
		logger.String("dataset", dataset),
		logger.String("path", path),
		logger.Int("rows", len(rows)),
		logger.Float64("duration_ms", elapsed),
	)
	return rows, nil
}

func parseAge(ctx context.Context, t *table) ([]model.AgeGroupBucket, error) {
	group, err := t.column(colAgeGroup)
	if err != nil {
		return nil, err
	}
	total, err := t.column(colTotalCases)
	if err != nil {
		return nil, err
	}

	out := []model.AgeGroupBucket{}
	err = t.each(ctx, func(rec []string) error {
		n, err := t.integer(rec, total, colTotalCases)
		if err != nil {
			return err
		}
		out = append(out, model.AgeGroupBucket{AgeGroup: t.text(rec, group), TotalCases: n})
		return nil
	})
	return out, err
}

func parseStates(ctx context.Context, t *table) ([]model.StateTimeSeriesRow, error) {
	date, err := t.column(colDate)
	if err != nil {
		return nil, err
	}
	confirmed, err := t.column(colConfirmed)
	if err != nil {
		return nil, err
	}
	state := t.optionalColumn(stateColumns...)

	out := []model.StateTimeSeriesRow{}
	err = t.each(ctx, func(rec []string) error {
		n, err := t.integer(rec, confirmed, colConfirmed)
		if err != nil {
			return err
		}
		row := model.StateTimeSeriesRow{Date: t.text(rec, date), Confirmed: n}
		if state >= 0 {
			row.State = t.text(rec, state)
		}
		out = append(out, row)
		return nil
	})
	return out, err
}

func parseIndividuals(ctx context.Context, t *table) ([]model.IndividualRecord, error) {
	status, err := t.column(colCurrentStatus)
	if err != nil {
		return nil, err
	}
	state, err := t.column(colDetectedState)
	if err != nil {
		return nil, err
	}

	out := []model.IndividualRecord{}
	err = t.each(ctx, func(rec []string) error {
		out = append(out, model.IndividualRecord{
			Status:        model.ParseStatus(t.text(rec, status)),
			DetectedState: t.text(rec, state),
		})
		return nil
	})
	return out, err
}

// table is a header-indexed CSV reader.
type table struct {
	r      *csv.Reader
	header map[string]int
	line   int
}

// lineError ties a parse failure to its CSV line.
type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string { return fmt.Sprintf("line %d: %v", e.line, e.err) }
func (e *lineError) Unwrap() error { return e.err }

func newTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file, no header", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	t := &table{r: cr, header: make(map[string]int, len(head)), line: 1}
	for i, name := range head {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := t.header[name]; !dup {
			t.header[name] = i
		}
	}
	return t, nil
}

func (t *table) column(name string) (int, error) {
	i, ok := t.header[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return i, nil
}

// optionalColumn returns the index of the first present name, or -1.
func (t *table) optionalColumn(names ...string) int {
	for _, n := range names {
		if i, ok := t.header[n]; ok {
			return i
		}
	}
	return -1
}

func (t *table) text(rec []string, i int) string {
	return strings.TrimSpace(rec[i])
}

func (t *table) integer(rec []string, i int, name string) (int, error) {
	v := strings.TrimSpace(rec[i])
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q value %q is not an integer", ErrMalformed, name, v)
	}
	return n, nil
}

// each calls fn for every data record. Records are reused between calls.
func (t *table) each(ctx context.Context, fn func(rec []string) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := t.r.Read()
		if err == io.EOF {
			return nil
		}
		t.line++
		if err != nil {
			return &lineError{line: t.line, err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		if err := fn(rec); err != nil {
			return &lineError{line: t.line, err: err}
		}
	}
}
