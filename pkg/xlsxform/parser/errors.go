package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/models"
)

// ErrNotFound indicates the input path does not resolve to a readable file.
var ErrNotFound = errors.New("input not found")

// ErrInvalidFormat indicates the input is not a valid xlsx workbook container.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrMalformedField indicates a classified field violates its kind's structure.
var ErrMalformedField = errors.New("malformed field")

// FormatError describes why a file was rejected as a workbook container.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidFormat, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidFormat, e.Reason)
}

// Is reports ErrInvalidFormat as a match so callers can use errors.Is.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func invalidFormat(reason string, err error) error {
	return &FormatError{Reason: reason, Err: err}
}

// FieldError describes a field that failed its kind's structural check.
type FieldError struct {
	Row    int
	Label  string
	Kind   models.FieldKind
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s field %q at row %d: %s", ErrMalformedField, e.Kind, e.Label, e.Row, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedField
}
