package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotReady   = errors.New("dashboard data not loaded")
	ErrRender     = errors.New("render failed")
)

var errMissingStatus = errors.New("status is required")

// wrapKind tags err with an operation name and a sentinel kind so handlers
// can log the cause while clients only see the kind.
func wrapKind(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
