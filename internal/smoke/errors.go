package smoke

import "errors"

// Sentinel errors reported by a run.
var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrCheckFailed      = errors.New("check failed")
)
