// Package error defines domain-specific errors for the recurring-expense engine.
package error

import "errors"

// Projection domain errors.
var (
	// ErrInvalidHorizon is returned when the projection horizon is not a positive number of months.
	ErrInvalidHorizon = errors.New("projection horizon must be positive")

	// ErrInvalidGranularity is returned when the timeline granularity is not weekly or monthly.
	ErrInvalidGranularity = errors.New("invalid timeline granularity")

	// ErrInvalidDisplayMode is returned when the display mode is neither condensed nor individual.
	ErrInvalidDisplayMode = errors.New("invalid display mode")
)

// ProjectionErrorCode defines error codes for projection errors.
// Format: PRJ-XXYYYY where XX is category and YYYY is specific error.
type ProjectionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidHorizon     ProjectionErrorCode = "PRJ-010001"
	ErrCodeInvalidGranularity ProjectionErrorCode = "PRJ-010002"
	ErrCodeInvalidDisplayMode ProjectionErrorCode = "PRJ-010003"
	ErrCodeInvalidPeriodDate  ProjectionErrorCode = "PRJ-010004"
)

// ProjectionError represents a projection error with code and message.
type ProjectionError struct {
	Code    ProjectionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProjectionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProjectionError) Unwrap() error {
	return e.Err
}

// NewProjectionError creates a new ProjectionError with the given code and message.
func NewProjectionError(code ProjectionErrorCode, message string, err error) *ProjectionError {
	return &ProjectionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
