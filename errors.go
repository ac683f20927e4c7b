package imagescore

import (
	"errors"
	"io/fs"

	"github.com/simonhull/imagescore/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// It is reachable from a MetadataError with errors.As.
type UnsupportedFormatError = types.UnsupportedFormatError

// TruncatedError is an alias to types.TruncatedError.
// It is reachable from a MetadataError with errors.As.
type TruncatedError = types.TruncatedError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// ErrorKind classifies a MetadataError or ScanError.
type ErrorKind int

const (
	// KindOther is a decoding failure not otherwise classified.
	KindOther ErrorKind = iota
	// KindUnsupportedFormat means the container format was not recognized.
	KindUnsupportedFormat
	// KindTruncated means the data ended inside a declared structure.
	KindTruncated
	// KindIOFailure means the file system refused a read, open or stat.
	KindIOFailure
	// KindInvalidThreshold means a scan's minimum score was NaN or infinite.
	KindInvalidThreshold
	// KindPathNotFound means a scan root does not exist.
	KindPathNotFound
	// KindInvalidPath means a scan root is neither a file nor a folder.
	KindInvalidPath
)

// String returns the kind's name.
func (k ErrorKind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindTruncated:
		return "Truncated"
	case KindIOFailure:
		return "IOFailure"
	case KindInvalidThreshold:
		return "InvalidThreshold"
	case KindPathNotFound:
		return "PathNotFound"
	case KindInvalidPath:
		return "InvalidPath"
	default:
		return "Other"
	}
}

// Sentinels matched by MetadataError and ScanError through errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrTruncated         = errors.New("truncated data")
	ErrIOFailure         = errors.New("i/o failure")
	ErrInvalidThreshold  = errors.New("invalid threshold")
	ErrPathNotFound      = errors.New("path not found")
	ErrInvalidPath       = errors.New("invalid path")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindTruncated:
		return ErrTruncated
	case KindIOFailure:
		return ErrIOFailure
	case KindInvalidThreshold:
		return ErrInvalidThreshold
	case KindPathNotFound:
		return ErrPathNotFound
	case KindInvalidPath:
		return ErrInvalidPath
	default:
		return nil
	}
}

// User-facing messages.
const (
	msgUnsupportedFormat = "The selected file format is not supported."
	msgTruncated         = "The selected file appears to be truncated or corrupted."
	msgInvalidThreshold  = "The minimum score must be a finite number."
	msgPathNotFound      = "The selected path does not exist."
	msgInvalidPath       = "The selected path is neither a file nor a folder."
)

// MetadataError is returned by ReadMetadata and CollectBytes. Its Error
// method yields a message suitable for showing to a user; Err holds the
// underlying cause.
type MetadataError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	switch e.Kind {
	case KindUnsupportedFormat:
		return msgUnsupportedFormat
	case KindTruncated:
		return msgTruncated
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *MetadataError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// ScanError is returned by Scan and FindAestheticMatches when the scan as a
// whole cannot run. Per-file failures never produce a ScanError.
type ScanError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	switch e.Kind {
	case KindInvalidThreshold:
		return msgInvalidThreshold
	case KindPathNotFound:
		return msgPathNotFound
	case KindInvalidPath:
		return msgInvalidPath
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *ScanError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// newMetadataError collapses a collection failure into a MetadataError.
func newMetadataError(path string, err error) *MetadataError {
	var (
		pathErr     *fs.PathError
		unsupported *types.UnsupportedFormatError
		truncated   *types.TruncatedError
	)
	kind := KindOther
	switch {
	case errors.As(err, &pathErr):
		kind = KindIOFailure
	case errors.As(err, &unsupported):
		kind = KindUnsupportedFormat
	case errors.As(err, &truncated):
		kind = KindTruncated
	}
	return &MetadataError{Kind: kind, Path: path, Err: err}
}

// newScanError collapses a scan precondition failure into a ScanError.
func newScanError(path string, err error) *ScanError {
	var (
		threshold *types.InvalidThresholdError
		notFound  *types.PathNotFoundError
		invalid   *types.InvalidPathError
	)
	kind := KindIOFailure
	switch {
	case errors.As(err, &threshold):
		kind = KindInvalidThreshold
	case errors.As(err, &notFound):
		kind = KindPathNotFound
	case errors.As(err, &invalid):
		kind = KindInvalidPath
	}
	return &ScanError{Kind: kind, Path: path, Err: err}
}
