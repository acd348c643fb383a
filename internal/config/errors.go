package config

import "errors"

// ErrLoadConfig wraps failures to read the YAML file, the environment, or to
// decode them into Config (for example a metrics_refresh_interval of "soon").
var ErrLoadConfig = errors.New("config: load failed")

// ErrInvalidConfig wraps every rejected value, so callers can tell a bad
// setting from an unreadable source with errors.Is.
var ErrInvalidConfig = errors.New("config: invalid value")

// ErrBucketOrder is joined with ErrInvalidConfig when metrics_buckets is not
// strictly increasing, which Prometheus would reject at registration.
var ErrBucketOrder = errors.New("metrics_buckets must be strictly increasing")
