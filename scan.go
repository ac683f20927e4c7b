package imagescore

import (
	"context"
	"errors"

	"github.com/simonhull/imagescore/internal/scan"
)

// Match is an image whose aesthetic score met a scan's threshold.
type Match = scan.Match

// Stats summarizes one scan.
type Stats = scan.Stats

// FindAestheticMatches scans path with default options. It is Scan under
// the name the application layer calls.
func FindAestheticMatches(path string, minScore float64) ([]Match, error) {
	return Scan(path, minScore)
}

// Scan finds every supported image under path whose aesthetic score is at
// least minScore, ordered by score, highest first.
//
// path may be a folder, which is walked recursively, or a single file.
// Files that cannot be read or decoded are skipped. Errors are returned
// only when the scan as a whole cannot run, as a *ScanError:
//
//	matches, err := imagescore.Scan("/srv/photos", 0.5,
//		imagescore.WithConcurrency(4),
//	)
//	if errors.Is(err, imagescore.ErrPathNotFound) {
//		...
//	}
func Scan(path string, minScore float64, opts ...Option) ([]Match, error) {
	return ScanContext(context.Background(), path, minScore, opts...)
}

// ScanContext is Scan with cancellation. When ctx is canceled the scan
// stops and ctx.Err() is returned.
func ScanContext(ctx context.Context, path string, minScore float64, opts ...Option) ([]Match, error) {
	matches, _, err := ScanWithStats(ctx, path, minScore, opts...)
	return matches, err
}

// ScanWithStats is ScanContext that also reports traversal statistics.
func ScanWithStats(ctx context.Context, path string, minScore float64, opts ...Option) ([]Match, Stats, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	matches, stats, err := scan.New(options.scanOptions()...).ScanWithStats(ctx, path, minScore)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, stats, err
		}
		return nil, stats, newScanError(path, err)
	}
	return matches, stats, nil
}
