package aggregate

import "errors"

// Sentinel kinds for aggregate errors.
var (
	ErrUnknownSeriesMode = errors.New("unknown series mode")
)
