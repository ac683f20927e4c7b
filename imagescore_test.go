package imagescore_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/imagescore"
	ts "github.com/simonhull/imagescore/internal/testsupport"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	return ts.WriteFile(t, t.TempDir(), name, data)
}

func TestReadMetadata_PNGWithoutText(t *testing.T) {
	fields, err := imagescore.ReadMetadata(writeTemp(t, "plain.png", ts.PNG()))
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("got %d fields, want 0: %v", len(fields), fields)
	}
}

func TestReadMetadata_PNGText(t *testing.T) {
	path := writeTemp(t, "text.png", ts.PNG(ts.TextChunk("Software", "Test App")))

	fields, err := imagescore.ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(fields))
	}
	f := fields[0]
	if f.Section.String() != "PNG tEXt" || f.Tag != "Software" || f.Value != "Test App" {
		t.Errorf("field = {%s %s %s}, want {PNG tEXt Software Test App}", f.Section, f.Tag, f.Value)
	}
}

func TestReadMetadata_PNGCompressedText(t *testing.T) {
	path := writeTemp(t, "ztxt.png", ts.PNG(ts.CompressedTextChunk(t, "Comment", "Compressed note")))

	fields, err := imagescore.ReadMetadata(path)
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(fields))
	}
	if fields[0].Section != imagescore.PNGCompressedText || fields[0].Tag != "Comment" || fields[0].Value != "Compressed note" {
		t.Errorf("field = %+v", fields[0])
	}
}

func TestReadMetadata_PNGInternationalText(t *testing.T) {
	chunk := ts.InternationalTextChunk("Description", "en", "Beschreibung", "International text")
	fields, err := imagescore.ReadMetadata(writeTemp(t, "itxt.png", ts.PNG(chunk)))
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(fields))
	}
	for _, want := range []string{"International text", "Language tag: en", "Translated keyword: Beschreibung"} {
		if !strings.Contains(fields[0].Value, want) {
			t.Errorf("value %q should contain %q", fields[0].Value, want)
		}
	}
}

func TestReadMetadata_TextFile(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("Meeting notes: bring the camera.\n"))

	_, err := imagescore.ReadMetadata(path)
	if err == nil {
		t.Fatal("expected error for a text file")
	}
	if got, want := err.Error(), "The selected file format is not supported."; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if !errors.Is(err, imagescore.ErrUnsupportedFormat) {
		t.Error("error should match ErrUnsupportedFormat")
	}

	var unsupported *imagescore.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Error("error should unwrap to *UnsupportedFormatError")
	}
}

func TestReadMetadata_Truncated(t *testing.T) {
	full := ts.JPEG(ts.TIFF([]ts.Entry{ts.ASCII(ts.TagMake, "Canon")}, nil))
	path := writeTemp(t, "cut.jpg", full[:30])

	_, err := imagescore.ReadMetadata(path)
	if err == nil {
		t.Fatal("expected error for a truncated file")
	}
	if got, want := err.Error(), "The selected file appears to be truncated or corrupted."; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if !errors.Is(err, imagescore.ErrTruncated) {
		t.Error("error should match ErrTruncated")
	}
}

func TestReadMetadata_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jpg")
	_, err := imagescore.ReadMetadata(path)

	var metaErr *imagescore.MetadataError
	if !errors.As(err, &metaErr) {
		t.Fatalf("error = %T, want *MetadataError", err)
	}
	if metaErr.Kind != imagescore.KindIOFailure {
		t.Errorf("Kind = %s, want IOFailure", metaErr.Kind)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("error should wrap os.ErrNotExist")
	}
	if !strings.Contains(err.Error(), "missing.jpg") {
		t.Errorf("error %q should carry the OS message", err)
	}
}

func TestReadMetadata_JPEG(t *testing.T) {
	block := ts.TIFF(
		[]ts.Entry{ts.ASCII(ts.TagMake, "Canon"), ts.ASCII(ts.TagModel, "EOS R5")},
		[]ts.Entry{ts.Rational(ts.TagExposureTime, 1, 250)},
	)
	fields, err := imagescore.ReadMetadata(writeTemp(t, "photo.jpg", ts.JPEG(block)))
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}

	want := map[string]string{
		"Make":         "IFD0",
		"Model":        "IFD0",
		"ExposureTime": "Exif",
	}
	for _, f := range fields {
		if section, ok := want[f.Tag]; ok {
			if f.Section.String() != section {
				t.Errorf("%s section = %s, want %s", f.Tag, f.Section, section)
			}
			delete(want, f.Tag)
		}
	}
	if len(want) > 0 {
		t.Errorf("missing fields: %v", want)
	}
}

func TestReadMetadata_BMP(t *testing.T) {
	fields, err := imagescore.ReadMetadata(writeTemp(t, "image.bmp", ts.BMP()))
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("got %d fields, want 0", len(fields))
	}
}

func TestCollectBytes_Sorted(t *testing.T) {
	block := ts.TIFF(
		[]ts.Entry{ts.ASCII(ts.TagSoftware, "editor"), ts.ASCII(ts.TagMake, "Canon")},
		[]ts.Entry{ts.Rational(ts.TagFNumber, 4, 1), ts.UserComment("hello")},
	)
	data := ts.PNG(
		ts.Chunk("eXIf", block),
		ts.TextChunk("Zeta", "z"),
		ts.TextChunk("Alpha", "a"),
		ts.InternationalTextChunk("Title", "", "", "t"),
	)

	fields, err := imagescore.CollectBytes(data, "mixed.png")
	if err != nil {
		t.Fatalf("CollectBytes() error = %v", err)
	}
	for i := 1; i < len(fields); i++ {
		prev, cur := fields[i-1], fields[i]
		ps, cs := prev.Section.String(), cur.Section.String()
		if ps > cs || (ps == cs && prev.Tag > cur.Tag) {
			t.Errorf("fields out of order at %d: [%s %s] before [%s %s]", i, ps, prev.Tag, cs, cur.Tag)
		}
	}
}

func TestCollectBytes_Idempotent(t *testing.T) {
	data := ts.PNG(
		ts.TextChunk("B", "2"),
		ts.CompressedTextChunk(t, "A", "1"),
		ts.TextChunk("B", "dup"),
	)

	first, err := imagescore.CollectBytes(data, "a.png")
	if err != nil {
		t.Fatal(err)
	}
	second, err := imagescore.CollectBytes(data, "a.png")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("field %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtractScore(t *testing.T) {
	fields, err := imagescore.CollectBytes(ts.ScoredPNG("Score: 0.82/1.0"), "s.png")
	if err != nil {
		t.Fatal(err)
	}
	got, ok := imagescore.ExtractScore(fields)
	if !ok || got != 0.82 {
		t.Errorf("ExtractScore() = %v, %v; want 0.82, true", got, ok)
	}

	if _, ok := imagescore.ExtractScore(nil); ok {
		t.Error("ExtractScore(nil) should report no score")
	}
}
