package scan

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ts "github.com/simonhull/imagescore/internal/testsupport"
	"github.com/simonhull/imagescore/internal/types"
)

func TestScan_Threshold(t *testing.T) {
	dir := t.TempDir()
	high := ts.WriteFile(t, dir, "high.png", ts.ScoredPNG("0.82"))
	ts.WriteFile(t, dir, "low.png", ts.ScoredPNG("0.25"))

	matches, err := New().Scan(context.Background(), dir, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, high, matches[0].Path)
	assert.InDelta(t, 0.82, matches[0].Score, 1e-9)
}

func TestScan_RankedDescending(t *testing.T) {
	dir := t.TempDir()
	ts.WriteFile(t, dir, "a.png", ts.ScoredPNG("3"))
	ts.WriteFile(t, dir, "nested/b.png", ts.ScoredPNG("9.5"))
	ts.WriteFile(t, dir, "nested/deeper/c.png", ts.ScoredPNG("Score: 6/10"))
	ts.WriteFile(t, dir, "d.png", ts.PNG(ts.TextChunk("Software", "no score")))

	matches, err := New().Scan(context.Background(), dir, -100)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, []float64{9.5, 6, 3}, []float64{matches[0].Score, matches[1].Score, matches[2].Score})
	assert.Equal(t, filepath.Join(dir, "nested", "b.png"), matches[0].Path)
}

func TestScan_OnlySupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	ts.WriteFile(t, dir, "scored.txt", ts.ScoredPNG("0.99"))
	ts.WriteFile(t, dir, "scored.gif", ts.ScoredPNG("0.99"))
	ts.WriteFile(t, dir, "UPPER.PNG", ts.ScoredPNG("0.7"))

	matches, stats, err := New().ScanWithStats(context.Background(), dir, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "UPPER.PNG", filepath.Base(matches[0].Path))
	assert.Equal(t, 3, stats.Seen)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1, stats.Analyzed)

	for _, m := range matches {
		assert.True(t, types.SupportedExtension(m.Path), m.Path)
		assert.GreaterOrEqual(t, m.Score, 0.0)
	}
}

func TestScan_FailedFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	ts.WriteFile(t, dir, "text.jpg", []byte("this is not really a jpeg"))
	full := ts.JPEG(ts.TIFF([]ts.Entry{ts.ASCII(ts.TagMake, "Canon")}, nil))
	ts.WriteFile(t, dir, "cut.jpg", full[:30])
	good := ts.WriteFile(t, dir, "good.png", ts.ScoredPNG("1"))

	matches, stats, err := New().ScanWithStats(context.Background(), dir, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, good, matches[0].Path)
	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 1, stats.Analyzed)
	assert.Positive(t, stats.Bytes)
}

func TestScan_OversizedTagCountIsSkipped(t *testing.T) {
	dir := t.TempDir()
	bad := ts.Entry{Tag: ts.TagXResolution, Type: ts.TypeRational, Count: 0xE0000001, Data: make([]byte, 8)}
	ts.WriteFile(t, dir, "huge.jpg", ts.JPEG(ts.TIFF([]ts.Entry{bad}, nil)))
	good := ts.WriteFile(t, dir, "good.png", ts.ScoredPNG("0.9"))

	matches, stats, err := New().ScanWithStats(context.Background(), dir, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, good, matches[0].Path)
	assert.InDelta(t, 0.9, matches[0].Score, 1e-9)
	assert.Equal(t, 1, stats.Failed)
}

func TestScan_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := ts.WriteFile(t, dir, "one.png", ts.ScoredPNG("0.6"))

	matches, err := New().Scan(context.Background(), path, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, path, matches[0].Path)

	matches, err = New().Scan(context.Background(), path, 0.7)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestScan_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := New().Scan(context.Background(), dir, v)
		var invalid *types.InvalidThresholdError
		assert.ErrorAs(t, err, &invalid, "threshold %v", v)
	}
}

func TestScan_PathNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := New().Scan(context.Background(), missing, 0)

	var notFound *types.PathNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.Path)
}

func TestScan_InvalidPath(t *testing.T) {
	if _, err := os.Stat("/dev/null"); err != nil {
		t.Skip("no /dev/null on this system")
	}
	_, err := New().Scan(context.Background(), "/dev/null", 0)

	var invalid *types.InvalidPathError
	assert.ErrorAs(t, err, &invalid)
}

func TestScan_ParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	for i := range 40 {
		// Repeating scores exercise the tie order.
		name := fmt.Sprintf("d%d/img%02d.png", i%4, i)
		ts.WriteFile(t, dir, name, ts.ScoredPNG(fmt.Sprintf("%d", i%5)))
	}

	sequential, err := New().Scan(context.Background(), dir, 0)
	require.NoError(t, err)
	parallel, err := New(WithConcurrency(8)).Scan(context.Background(), dir, 0)
	require.NoError(t, err)

	require.Len(t, sequential, 40)
	assert.Equal(t, sequential, parallel)
}

func TestScan_SymlinkCycle(t *testing.T) {
	dir := t.TempDir()
	ts.WriteFile(t, dir, "a/img.png", ts.ScoredPNG("5"))
	if err := os.Symlink(dir, filepath.Join(dir, "a", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	for _, follow := range []bool{false, true} {
		t.Run(fmt.Sprintf("follow=%v", follow), func(t *testing.T) {
			matches, err := New(WithFollowSymlinks(follow)).Scan(context.Background(), dir, 0)
			require.NoError(t, err)
			require.Len(t, matches, 1)
			assert.Equal(t, filepath.Join(dir, "a", "img.png"), matches[0].Path)
		})
	}
}

func TestScan_FollowsSymlinkedDirectory(t *testing.T) {
	outside := t.TempDir()
	ts.WriteFile(t, outside, "linked.png", ts.ScoredPNG("2"))

	dir := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	matches, err := New().Scan(context.Background(), dir, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = New(WithFollowSymlinks(true)).Scan(context.Background(), dir, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(dir, "link", "linked.png"), matches[0].Path)
}

func TestScan_Canceled(t *testing.T) {
	dir := t.TempDir()
	ts.WriteFile(t, dir, "a.png", ts.ScoredPNG("1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Scan(ctx, dir, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_EmptyDirectory(t *testing.T) {
	matches, stats, err := New().ScanWithStats(context.Background(), t.TempDir(), 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 1, stats.Dirs)
}

func TestWithConcurrency_Floor(t *testing.T) {
	s := New(WithConcurrency(-3))
	assert.Equal(t, 1, s.opts.concurrency)
}
