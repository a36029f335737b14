package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no shape has the requested id.
	ErrNotFound = errors.New("shape not found")
	// ErrInvalidSize is returned by New for non-positive dimensions.
	ErrInvalidSize = errors.New("canvas size must be positive")
	// ErrUnsupportedFormat is returned when an export path has an extension
	// no encoder is registered for.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ErrorKind classifies export failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindEncode covers unsupported formats and encoder failures.
	KindEncode
	// KindIO covers creating, writing and closing the destination.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindEncode:
		return "encode"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ExportError is returned by SaveImage and Encode.
type ExportError struct {
	// Op is the step that failed, e.g. "create" or "encode".
	Op   string
	Kind ErrorKind
	// Path is the destination file, empty when writing to a stream.
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("export %s [%s] %s: %v", e.Op, e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("export %s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IsIO reports whether err is an export failure caused by the filesystem.
func IsIO(err error) bool {
	var ee *ExportError
	return errors.As(err, &ee) && ee.Kind == KindIO
}

// IsEncode reports whether err is an export failure caused by encoding.
func IsEncode(err error) bool {
	var ee *ExportError
	return errors.As(err, &ee) && ee.Kind == KindEncode
}
