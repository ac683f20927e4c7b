package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ScoredPNG returns a PNG carrying an aesthetic score in a tEXt chunk.
func ScoredPNG(score string) []byte {
	return PNG(TextChunk("aesthetic_score", score))
}
