// Package error defines domain-specific errors for the recurring-expense engine.
package error

import "errors"

// Recurring-expense domain errors.
var (
	// ErrInvalidPeriodType is returned when an unknown budget period type is supplied.
	ErrInvalidPeriodType = errors.New("invalid period type")

	// ErrInvalidRecurrenceType is returned when an unknown recurrence type is supplied.
	ErrInvalidRecurrenceType = errors.New("invalid recurrence type")

	// ErrRecurringExpenseNotFound is returned when a recurring expense is not found.
	ErrRecurringExpenseNotFound = errors.New("recurring expense not found")

	// ErrTransactionNotFound is returned when a referenced transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyRecurringExpense is returned when the expense belongs to another user.
	ErrNotAuthorizedToModifyRecurringExpense = errors.New("not authorized to modify recurring expense")

	// ErrMatchAlreadyExists is returned when a transaction is already linked to the expense.
	ErrMatchAlreadyExists = errors.New("transaction already linked to recurring expense")

	// ErrMatchNotFound is returned when the requested link does not exist.
	ErrMatchNotFound = errors.New("link not found")
)

// RecurringErrorCode defines error codes for recurring-expense errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriodType      RecurringErrorCode = "REC-010001"
	ErrCodeInvalidRecurrenceType  RecurringErrorCode = "REC-010002"
	ErrCodeRecurringNotFound      RecurringErrorCode = "REC-010003"
	ErrCodeTransactionNotFound    RecurringErrorCode = "REC-010004"
	ErrCodeNotAuthorizedRecurring RecurringErrorCode = "REC-010005"
	ErrCodeMatchAlreadyExists     RecurringErrorCode = "REC-010006"
	ErrCodeMatchNotFound          RecurringErrorCode = "REC-010007"
	ErrCodeMissingUserScope       RecurringErrorCode = "REC-010008"
)

// RecurringError represents a recurring-expense error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
