package imagescore

import (
	"log/slog"

	"github.com/simonhull/imagescore/internal/scan"
)

// Option configures a scan.
//
// Options use the functional options pattern:
//
//	matches, err := imagescore.Scan(dir, 0.5,
//	    imagescore.WithConcurrency(8),
//	    imagescore.WithFollowSymlinks(true),
//	)
type Option func(*scanOptions)

// scanOptions holds configuration for a scan.
type scanOptions struct {
	concurrency    int  // files analyzed at once
	followSymlinks bool // descend into symlinked folders
	logger         *slog.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() *scanOptions {
	return &scanOptions{
		concurrency: 1, // sequential
	}
}

func (o *scanOptions) scanOptions() []scan.Option {
	return []scan.Option{
		scan.WithConcurrency(o.concurrency),
		scan.WithFollowSymlinks(o.followSymlinks),
		scan.WithLogger(o.logger),
	}
}

// WithConcurrency analyzes up to n files at once. The default of 1 scans
// sequentially. Results are ranked identically for every n.
//
// Example:
//
//	matches, err := imagescore.Scan(dir, 0.5, imagescore.WithConcurrency(runtime.NumCPU()))
func WithConcurrency(n int) Option {
	return func(o *scanOptions) {
		o.concurrency = n
	}
}

// WithFollowSymlinks descends into symlinked folders.
//
// By default symlinked folders are not entered. With following enabled,
// each folder is visited once by its canonical path, so link cycles
// cannot loop forever.
func WithFollowSymlinks(follow bool) Option {
	return func(o *scanOptions) {
		o.followSymlinks = follow
	}
}

// WithLogger receives debug records for skipped files and a summary per
// scan. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *scanOptions) {
		o.logger = l
	}
}
