package repository

import (
	"io"
	"io/fs"

	"github.com/okian/indiacovid/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets the logger used to report each loaded dataset.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithFS reads sources from fsys instead of the OS filesystem. Paths must
// then be valid fs.FS paths (slash separated, unrooted).
func WithFS(fsys fs.FS) Option {
	return func(ld *Loader) {
		if fsys != nil {
			ld.open = func(name string) (io.ReadCloser, error) { return fsys.Open(name) }
		}
	}
}
