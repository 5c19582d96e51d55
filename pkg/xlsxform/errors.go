package xlsxform

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/output"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/parser"
)

// ErrNotFound indicates the input path does not resolve to a readable file.
var ErrNotFound = parser.ErrNotFound

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrMalformedField indicates a classified field violates its kind's structure.
var ErrMalformedField = parser.ErrMalformedField

// ErrIO indicates the output document could not be written.
var ErrIO = output.ErrIO

// ErrRunnerClosed is returned for work submitted after the runner closed.
var ErrRunnerClosed = errors.New("runner closed")

// ErrorKind identifies the category of a conversion failure.
type ErrorKind string

const (
	ErrorKindUnknown        ErrorKind = "unknown"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindInvalidFormat  ErrorKind = "invalid_format"
	ErrorKindMalformedField ErrorKind = "malformed_field"
	ErrorKindIO             ErrorKind = "io"
)

// KindOf classifies err. It returns the empty kind for a nil error.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return ErrorKindNotFound
	case errors.Is(err, ErrInvalidFormat):
		return ErrorKindInvalidFormat
	case errors.Is(err, ErrMalformedField):
		return ErrorKindMalformedField
	case errors.Is(err, ErrIO):
		return ErrorKindIO
	}
	return ErrorKindUnknown
}

// ConversionError represents a failed conversion stage.
type ConversionError struct {
	Stage string // "read", "classify", "extract", "encode", "write"
	Path  string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Kind returns the category of the underlying failure.
func (e *ConversionError) Kind() ErrorKind {
	return KindOf(e.Err)
}

// NewConversionError creates a new ConversionError.
func NewConversionError(stage, path string, err error) *ConversionError {
	return &ConversionError{
		Stage: stage,
		Path:  path,
		Err:   err,
	}
}
