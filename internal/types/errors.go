package types

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNoTagData is returned by the container-tag decoder when a recognized
// container carries no EXIF block. Callers treat it as zero fields.
var ErrNoTagData = errors.New("no tag data present")

// UnsupportedFormatError is returned when the container format is not recognized.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// TruncatedError is returned when data ends before a structure it declares.
type TruncatedError struct {
	Path   string
	What   string
	Offset int64
	Err    error
}

func (e *TruncatedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unexpected end of data at offset %d while reading %s: %v", e.Path, e.Offset, e.What, e.Err)
	}
	return fmt.Sprintf("%s: unexpected end of data at offset %d while reading %s", e.Path, e.Offset, e.What)
}

func (e *TruncatedError) Unwrap() error {
	return e.Err
}

// CorruptedFileError is returned when file structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// InvalidThresholdError is returned when a scan's minimum score is NaN or infinite.
type InvalidThresholdError struct {
	Value float64
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid minimum score %v: must be finite", e.Value)
}

// PathNotFoundError is returned when a scan root does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s: no such file or directory", e.Path)
}

// InvalidPathError is returned when a scan root is neither a regular file nor a directory.
type InvalidPathError struct {
	Path string
	Mode fs.FileMode
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s: not a file or directory (mode %s)", e.Path, e.Mode)
}
