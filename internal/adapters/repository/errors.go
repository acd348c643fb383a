package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for dataset load failures. A *LoadError always wraps one.
var (
	ErrMissingSource = errors.New("dataset source missing")
	ErrMalformed     = errors.New("dataset malformed")
	ErrMissingColumn = errors.New("dataset column missing")
)

// LoadError reports which dataset failed to load and why. It is fatal at
// startup: the dashboard never runs on a partial set of tables.
type LoadError struct {
	Dataset string
	Path    string
	// Line is the 1-based CSV line of the failure, 0 when not line specific.
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s dataset %q line %d: %v", e.Dataset, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s dataset %q: %v", e.Dataset, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// reason maps the wrapped sentinel to a short metrics label.
func (e *LoadError) reason() string {
	switch {
	case errors.Is(e.Err, ErrMissingSource):
		return "missing_source"
	case errors.Is(e.Err, ErrMissingColumn):
		return "missing_column"
	case errors.Is(e.Err, ErrMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
