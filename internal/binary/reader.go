// Package binary provides type-safe binary reading primitives with bounds checking.
//
// Two readers are provided. SafeReader wraps an io.ReaderAt and is used for
// format sniffing; Cursor walks an in-memory buffer and is used by the chunk
// and segment parsers, which always operate on a fully loaded file.
package binary

import (
	"errors"
	"fmt"
	"io"
)

// ErrOutOfBounds is wrapped by every read that would cross the end of the data.
var ErrOutOfBounds = errors.New("out of bounds")

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s: %w",
			sr.path, off, sr.size, what, ErrOutOfBounds)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s: %w",
			sr.path, len(b), off, sr.size, what, ErrOutOfBounds)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Magic reads n bytes at off and reports whether they equal want.
// Short files simply do not match.
func (sr *SafeReader) Magic(off int64, want string) bool {
	if off < 0 || off+int64(len(want)) > sr.size {
		return false
	}
	buf := make([]byte, len(want))
	if err := sr.ReadAt(buf, off, "magic bytes"); err != nil {
		return false
	}
	return string(buf) == want
}
