package imagescore

import (
	"io"

	"github.com/simonhull/imagescore/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
	FormatPNG     = types.FormatPNG
	FormatTIFF    = types.FormatTIFF
	FormatWebP    = types.FormatWebP
	FormatHEIF    = types.FormatHEIF
	FormatAVIF    = types.FormatAVIF
	FormatBMP     = types.FormatBMP
	FormatGIF     = types.FormatGIF
)

// DetectFormat is a wrapper around types.DetectFormat.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

// SupportedExtension reports whether a folder scan analyzes files with
// path's extension. Matching is case-insensitive.
func SupportedExtension(path string) bool {
	return types.SupportedExtension(path)
}
