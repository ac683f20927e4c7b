// Package scan walks a folder and ranks the images in it by their embedded
// aesthetic score.
package scan

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/imagescore/internal/collect"
	"github.com/simonhull/imagescore/internal/score"
	"github.com/simonhull/imagescore/internal/types"
)

// Match is an image whose score met the threshold.
type Match struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Stats summarizes one scan.
type Stats struct {
	Dirs     int   `json:"dirs"`     // directories read
	Seen     int   `json:"seen"`     // regular files discovered
	Skipped  int   `json:"skipped"`  // files without a supported extension
	Analyzed int   `json:"analyzed"` // files whose metadata was collected
	Failed   int   `json:"failed"`   // files that could not be read or decoded
	Bytes    int64 `json:"bytes"`    // bytes read from analyzed and failed files
}

// Scanner finds scored images under a root path. A Scanner holds no
// per-scan state and may be reused.
type Scanner struct {
	opts options
}

// New returns a Scanner configured by opts.
func New(opts ...Option) *Scanner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Scanner{opts: o}
}

// Scan returns every supported image under root scoring at least minScore,
// highest score first. See ScanWithStats.
func (s *Scanner) Scan(ctx context.Context, root string, minScore float64) ([]Match, error) {
	matches, _, err := s.ScanWithStats(ctx, root, minScore)
	return matches, err
}

// ScanWithStats is Scan that also reports traversal statistics.
//
// root may be a directory, which is walked, or a regular file, which is
// analyzed alone. Files that cannot be read or decoded are skipped.
//
// Errors:
//   - *types.InvalidThresholdError: minScore is NaN or infinite
//   - *types.PathNotFoundError: root does not exist
//   - *types.InvalidPathError: root is neither a regular file nor a directory
//   - ctx.Err() when the context is canceled
//   - a wrapped *fs.PathError when root itself cannot be inspected or listed
func (s *Scanner) ScanWithStats(ctx context.Context, root string, minScore float64) ([]Match, Stats, error) {
	var stats Stats
	if math.IsNaN(minScore) || math.IsInf(minScore, 0) {
		return nil, stats, &types.InvalidThresholdError{Value: minScore}
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, &types.PathNotFoundError{Path: root}
		}
		return nil, stats, fmt.Errorf("stat %s: %w", root, err)
	}

	var files []string
	switch {
	case info.Mode().IsRegular():
		files = []string{root}
		stats.Seen = 1
	case info.IsDir():
		files, err = s.walk(ctx, root, &stats)
		if err != nil {
			return nil, stats, err
		}
	default:
		return nil, stats, &types.InvalidPathError{Path: root, Mode: info.Mode()}
	}

	results, err := s.analyzeAll(ctx, files)
	if err != nil {
		return nil, stats, err
	}

	var matches []Match
	for i, r := range results {
		switch r.status {
		case statusSkipped:
			stats.Skipped++
			continue
		case statusFailed:
			stats.Failed++
		case statusAnalyzed:
			stats.Analyzed++
		}
		stats.Bytes += r.bytes
		if r.scored && r.score >= minScore {
			matches = append(matches, Match{Path: files[i], Score: r.score})
		}
	}

	// Stable on discovery order, so sequential and parallel scans agree.
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	s.opts.logger.Debug("scan complete",
		slog.String("root", root),
		slog.Int("matches", len(matches)),
		slog.Int("seen", stats.Seen),
		slog.Int("analyzed", stats.Analyzed),
		slog.Int("failed", stats.Failed),
	)
	return matches, stats, nil
}

type status uint8

const (
	statusSkipped status = iota
	statusAnalyzed
	statusFailed
)

type result struct {
	status status
	bytes  int64
	score  float64
	scored bool
}

// analyzeAll analyzes files with up to the configured number of workers.
// Results are indexed by discovery order.
func (s *Scanner) analyzeAll(ctx context.Context, files []string) ([]result, error) {
	results := make([]result, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.analyze(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyze collects one file's fields and extracts its score. Any failure
// is logged and reported as a failed result.
func (s *Scanner) analyze(path string) result {
	if !types.SupportedExtension(path) {
		return result{status: statusSkipped}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.opts.logger.Debug("skipping unreadable file", slog.String("path", path), slog.Any("error", err))
		return result{status: statusFailed}
	}

	fields, err := collect.Bytes(data, path)
	if err != nil {
		s.opts.logger.Debug("skipping undecodable file", slog.String("path", path), slog.Any("error", err))
		return result{status: statusFailed, bytes: int64(len(data))}
	}

	v, ok := score.Extract(fields)
	return result{status: statusAnalyzed, bytes: int64(len(data)), score: v, scored: ok}
}
