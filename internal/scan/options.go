package scan

import "log/slog"

// Option configures a Scanner.
type Option func(*options)

type options struct {
	concurrency    int  // files analyzed at once
	followSymlinks bool // descend into directory symlinks
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		concurrency: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithConcurrency sets how many files are analyzed at once. Values below 1
// mean sequential analysis. The ranking does not depend on this setting.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithFollowSymlinks enables descending into symlinked directories. Each
// directory is then visited once by canonical path, so link cycles
// terminate.
func WithFollowSymlinks(follow bool) Option {
	return func(o *options) {
		o.followSymlinks = follow
	}
}

// WithLogger sets the logger for skipped files and scan summaries.
// A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}
