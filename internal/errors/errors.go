package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"sheetviz/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeEmptyFile         = "EMPTY_FILE"
	CodeParseError        = "PARSE_ERROR"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeEmptyDataset      = "EMPTY_DATASET"
	CodeNoXAxis           = "NO_X_AXIS_SELECTED"
	CodeNoYAxis           = "NO_Y_AXIS_SELECTED"
	CodeTooManyYAxes      = "TOO_MANY_Y_AXES"
	CodeUnknownColumn     = "UNKNOWN_COLUMN"
	CodeEmptyFiltered     = "EMPTY_FILTERED_DATASET"
)

var domainCodes = []struct {
	sentinel error
	code     string
}{
	{core.ErrUnsupportedFormat, CodeUnsupportedFormat},
	{core.ErrEmptyFile, CodeEmptyFile},
	{core.ErrParse, CodeParseError},
	{core.ErrFileTooLarge, CodeFileTooLarge},
	{core.ErrEmptyDataset, CodeEmptyDataset},
	{core.ErrNoXAxisSelected, CodeNoXAxis},
	{core.ErrNoYAxisSelected, CodeNoYAxis},
	{core.ErrTooManyYAxes, CodeTooManyYAxes},
	{core.ErrUnknownColumn, CodeUnknownColumn},
	{core.ErrEmptyFilteredDataset, CodeEmptyFiltered},
	{core.ErrNotFound, CodeNotFound},
}

// FromDomain converts an error into an AppError, deriving the code from the
// domain sentinel it wraps. AppErrors pass through unchanged.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	for _, dc := range domainCodes {
		if stderrors.Is(err, dc.sentinel) {
			return &AppError{Code: dc.code, Message: err.Error(), Cause: err}
		}
	}
	return &AppError{Code: CodeInternalError, Message: err.Error(), Cause: err}
}

// HTTPStatus maps an error code onto the status the API responds with
func HTTPStatus(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case CodeEmptyFile, CodeParseError, CodeEmptyDataset:
		return http.StatusUnprocessableEntity
	case CodeValidationError, CodeInvalidInput, CodeNoXAxis, CodeNoYAxis,
		CodeTooManyYAxes, CodeUnknownColumn, CodeEmptyFiltered:
		return http.StatusBadRequest
	case CodeExternalUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeExternalUnavailable marks a dependency (database, storage) that is down
const CodeExternalUnavailable = "EXTERNAL_SERVICE_ERROR"

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalUnavailable,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
