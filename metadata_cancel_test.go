package imagescore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/simonhull/imagescore"
	ts "github.com/simonhull/imagescore/internal/testsupport"
)

// TestReadMany_Order verifies results line up with the input paths.
func TestReadMany_Order(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		ts.WriteFile(t, dir, "a.png", ts.PNG(ts.TextChunk("Name", "a"))),
		ts.WriteFile(t, dir, "b.png", ts.PNG(ts.TextChunk("Name", "b"))),
		ts.WriteFile(t, dir, "c.png", ts.PNG(ts.TextChunk("Name", "c"))),
	}

	results, err := imagescore.ReadMany(context.Background(), paths...)
	if err != nil {
		t.Fatalf("ReadMany() error = %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, want := range []string{"a", "b", "c"} {
		if len(results[i]) != 1 || results[i][0].Value != want {
			t.Errorf("result %d = %v, want value %q", i, results[i], want)
		}
	}
}

// TestReadMany_Cancellation verifies a canceled context stops the batch.
func TestReadMany_Cancellation(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = ts.WriteFile(t, dir, filepath.Join("f", string(rune('a'+i))+".png"), ts.PNG())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := imagescore.ReadMany(ctx, paths...)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if results != nil {
		t.Error("expected nil results on error")
	}
}

// TestReadMany_PartialFailure verifies one bad file fails the batch.
func TestReadMany_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := ts.WriteFile(t, dir, "good.png", ts.PNG())
	bad := ts.WriteFile(t, dir, "bad.png", []byte("not an image at all"))

	results, err := imagescore.ReadMany(context.Background(), good, bad)
	if !errors.Is(err, imagescore.ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if results != nil {
		t.Error("expected nil results on error")
	}
}

func TestReadMany_Empty(t *testing.T) {
	results, err := imagescore.ReadMany(context.Background())
	if err != nil || results != nil {
		t.Errorf("ReadMany() = %v, %v; want nil, nil", results, err)
	}
}

func TestReadMetadataContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := imagescore.ReadMetadataContext(ctx, "unused.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
