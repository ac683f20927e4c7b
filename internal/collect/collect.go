// Package collect gathers every metadata field an image carries: the
// container's EXIF tags plus any PNG text chunks, merged and sorted.
package collect

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/simonhull/imagescore/internal/exiftag"
	"github.com/simonhull/imagescore/internal/pngtext"
	"github.com/simonhull/imagescore/internal/types"
)

// File reads path into memory and collects its fields.
// Read failures are returned as the *fs.PathError from os.ReadFile.
func File(path string) ([]types.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Bytes(data, path)
}

// Bytes collects the fields of an in-memory image.
//
// A container without EXIF contributes no fields. Any other decoder error
// aborts collection and no fields are returned.
func Bytes(data []byte, path string) ([]types.Field, error) {
	records, err := exiftag.Decode(data, path)
	if err != nil && !errors.Is(err, types.ErrNoTagData) {
		return nil, fmt.Errorf("decode container tags: %w", err)
	}

	fields := exiftag.Normalize(slices.Values(records))
	fields = append(fields, pngtext.Extract(data)...)
	types.SortFields(fields)
	return fields, nil
}
