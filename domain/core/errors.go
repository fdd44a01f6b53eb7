package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Tabular parser errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrParse             = errors.New("malformed file content")
	ErrFileTooLarge      = errors.New("file exceeds the maximum upload size")

	// Column profiler errors
	ErrEmptyDataset = errors.New("dataset has no records")

	// Series builder errors
	ErrNoXAxisSelected      = errors.New("no x-axis column selected")
	ErrNoYAxisSelected      = errors.New("no y-axis column selected")
	ErrTooManyYAxes         = errors.New("too many y-axis columns selected")
	ErrUnknownColumn        = errors.New("unknown column")
	ErrEmptyFilteredDataset = errors.New("no rows have a value for the selected x-axis")

	// Lookup errors
	ErrNotFound      = errors.New("resource not found")
	ErrFileNotFound  = fmt.Errorf("%w: file", ErrNotFound)
	ErrChartNotFound = fmt.Errorf("%w: chart", ErrNotFound)
)

// Error constructors with context
func NewNotFoundError(resource error, id string) error {
	return fmt.Errorf("%w with id %s", resource, id)
}

func NewParseError(format string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: invalid %s content", ErrParse, format)
	}
	return fmt.Errorf("%w: invalid %s content: %v", ErrParse, format, err)
}

func NewUnknownColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIngestError reports failures raised while turning raw bytes into records.
func IsIngestError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrFileTooLarge)
}

// IsSelectionError reports invalid axis selections made against a dataset.
func IsSelectionError(err error) bool {
	return errors.Is(err, ErrNoXAxisSelected) ||
		errors.Is(err, ErrNoYAxisSelected) ||
		errors.Is(err, ErrTooManyYAxes) ||
		errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrEmptyFilteredDataset)
}
