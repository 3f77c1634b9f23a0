// Package pipeerrors defines the error taxonomy for the pipeline. Every
// stage failure is classified into one of four categories so the
// entrypoint can report a stable error code before aborting the run.
package pipeerrors

import (
	"errors"
	"fmt"
)

// Category classifies a pipeline failure.
type Category string

const (
	// CategoryIO covers missing or unreadable input files.
	CategoryIO Category = "IO_ERROR"
	// CategoryFormat covers unexpected workbook schema: absent sheets,
	// absent required columns, unrecognizable header rows.
	CategoryFormat Category = "FORMAT_ERROR"
	// CategoryData covers degenerate data: an all-missing column, or too
	// few values to compute a statistic.
	CategoryData Category = "DATA_ERROR"
	// CategoryNumeric covers ill-conditioned numeric computation, such as
	// a rank-deficient regression design matrix.
	CategoryNumeric Category = "NUMERIC_ERROR"
)

// Error is a categorized pipeline error. Op names the stage or operation
// that failed; Err optionally wraps the underlying cause.
type Error struct {
	Category Category
	Op       string
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Category, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Category, e.Op, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is matches two pipeline errors by category, so callers can test
// errors.Is(err, pipeerrors.IO("", "")) style sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Category == t.Category
}

// IO creates an IO-category error.
func IO(op, message string) *Error {
	return &Error{Category: CategoryIO, Op: op, Message: message}
}

// IOWrap creates an IO-category error wrapping a cause.
func IOWrap(op, message string, err error) *Error {
	return &Error{Category: CategoryIO, Op: op, Message: message, Err: err}
}

// Format creates a format-category error.
func Format(op, message string) *Error {
	return &Error{Category: CategoryFormat, Op: op, Message: message}
}

// Data creates a data-category error.
func Data(op, message string) *Error {
	return &Error{Category: CategoryData, Op: op, Message: message}
}

// Numeric creates a numeric-category error wrapping a cause.
func Numeric(op, message string, err error) *Error {
	return &Error{Category: CategoryNumeric, Op: op, Message: message, Err: err}
}

// CategoryOf returns the category of err, or "" when err is not a
// pipeline error.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}
