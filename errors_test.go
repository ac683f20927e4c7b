package imagescore

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/simonhull/imagescore/internal/types"
)

func TestMetadataError_Messages(t *testing.T) {
	cause := errors.New("decode exif: bad IFD")
	tests := []struct {
		name string
		err  *MetadataError
		want string
	}{
		{"unsupported", &MetadataError{Kind: KindUnsupportedFormat, Err: cause}, "The selected file format is not supported."},
		{"truncated", &MetadataError{Kind: KindTruncated, Err: cause}, "The selected file appears to be truncated or corrupted."},
		{"io", &MetadataError{Kind: KindIOFailure, Err: &fs.PathError{Op: "open", Path: "x.jpg", Err: fs.ErrPermission}}, "open x.jpg: permission denied"},
		{"other", &MetadataError{Kind: KindOther, Err: cause}, "decode exif: bad IFD"},
		{"other without cause", &MetadataError{Kind: KindOther}, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanError_Messages(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindInvalidThreshold, "The minimum score must be a finite number."},
		{KindPathNotFound, "The selected path does not exist."},
		{KindInvalidPath, "The selected path is neither a file nor a folder."},
	}
	for _, tt := range tests {
		err := &ScanError{Kind: tt.kind, Path: "/p"}
		if got := err.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNewMetadataError_Classifies(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     ErrorKind
		sentinel error
	}{
		{
			name:     "unsupported",
			err:      fmt.Errorf("decode: %w", &types.UnsupportedFormatError{Path: "a", Reason: "unknown image format"}),
			want:     KindUnsupportedFormat,
			sentinel: ErrUnsupportedFormat,
		},
		{
			name:     "truncated",
			err:      fmt.Errorf("decode: %w", &types.TruncatedError{Path: "a", What: "JPEG segment"}),
			want:     KindTruncated,
			sentinel: ErrTruncated,
		},
		{
			name:     "io",
			err:      &fs.PathError{Op: "open", Path: "a", Err: fs.ErrNotExist},
			want:     KindIOFailure,
			sentinel: ErrIOFailure,
		},
		{
			name: "corrupted is other",
			err:  &types.CorruptedFileError{Path: "a", Reason: "invalid segment length"},
			want: KindOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newMetadataError("a", tt.err)
			if got.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.want)
			}
			if tt.sentinel != nil && !errors.Is(got, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", got, tt.sentinel)
			}
			if !errors.Is(got, tt.err) {
				t.Error("cause should remain reachable")
			}
		})
	}
}

func TestNewScanError_Classifies(t *testing.T) {
	tests := []struct {
		err      error
		want     ErrorKind
		sentinel error
	}{
		{&types.InvalidThresholdError{}, KindInvalidThreshold, ErrInvalidThreshold},
		{&types.PathNotFoundError{Path: "/x"}, KindPathNotFound, ErrPathNotFound},
		{&types.InvalidPathError{Path: "/dev/null"}, KindInvalidPath, ErrInvalidPath},
		{fmt.Errorf("stat /x: %w", fs.ErrPermission), KindIOFailure, ErrIOFailure},
	}
	for _, tt := range tests {
		got := newScanError("/x", tt.err)
		if got.Kind != tt.want {
			t.Errorf("%v: Kind = %s, want %s", tt.err, got.Kind, tt.want)
		}
		if !errors.Is(got, tt.sentinel) {
			t.Errorf("%v: should match %v", tt.err, tt.sentinel)
		}
	}
}

func TestErrorIs_KindMismatch(t *testing.T) {
	err := &MetadataError{Kind: KindTruncated}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Error("truncated error should not match ErrUnsupportedFormat")
	}
	other := &MetadataError{Kind: KindOther}
	for _, s := range []error{ErrUnsupportedFormat, ErrTruncated, ErrIOFailure} {
		if errors.Is(other, s) {
			t.Errorf("KindOther should not match %v", s)
		}
	}
}
