package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrUnclosedQuote is returned when a quoted field is still open at end of input.
	ErrUnclosedQuote = errors.New("unclosed quoted field")
	// ErrRowLimit is returned when the configured row ceiling is exceeded.
	ErrRowLimit = errors.New("row limit exceeded")
	// ErrFieldCount is returned when a row's field count does not match the header count.
	ErrFieldCount = errors.New("wrong number of fields")
)

// ValidationError reports a malformed call argument.
type ValidationError struct {
	Argument string
	Message  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Argument, e.Message)
}

// ConfigurationError reports an invalid option value or combination.
type ConfigurationError struct {
	Option  string
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Option, e.Message)
}

// ParsingError reports a structural failure in the input. Line and Column are
// 1-based; Column is 0 when only the line is known.
type ParsingError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

// Error formats the parse error with its stored location.
func (e *ParsingError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("parse error on line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error on line %d: %s", e.Line, e.Message)
}

// Unwrap returns the underlying sentinel so ParsingError participates in errors.Is.
func (e *ParsingError) Unwrap() error {
	return e.Err
}

// FieldCountError is a ParsingError specialization carrying the expected and
// actual field counts for a mismatched row.
type FieldCountError struct {
	Line     int
	Expected int
	Actual   int
}

// Error implements the error interface.
func (e *FieldCountError) Error() string {
	return fmt.Sprintf("parse error on line %d: expected %d fields, got %d", e.Line, e.Expected, e.Actual)
}

// Unwrap returns ErrFieldCount.
func (e *FieldCountError) Unwrap() error {
	return ErrFieldCount
}

// LimitError reports that the configured row ceiling was exceeded. Limit is
// the configured maximum and Actual the row count that tripped it.
type LimitError struct {
	Limit  int
	Actual int
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("row limit exceeded: limit %d, actual %d", e.Limit, e.Actual)
}

// Unwrap returns ErrRowLimit.
func (e *LimitError) Unwrap() error {
	return ErrRowLimit
}
