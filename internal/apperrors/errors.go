package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRunAlreadyActive indicates a non-terminal revaluation run already exists
// for the requested (company, date, run type) scope.
var ErrRunAlreadyActive = errors.New("a revaluation run is already active for this scope")

// ErrRateUnavailable indicates no exchange rate could be resolved for a
// currency pair on or before the requested date. Per-account, not run-fatal.
var ErrRateUnavailable = errors.New("exchange rate unavailable for currency pair and date")

// ErrTemplateMissing indicates no journal template is configured for the
// (company, ledger) scope. Per-account, not run-fatal.
var ErrTemplateMissing = errors.New("journal template not configured for scope")

// ErrPostingRejected indicates the journal-entry subsystem refused a generated posting.
var ErrPostingRejected = errors.New("posting rejected by journal subsystem")

// ErrRunNotCancellable indicates the run is already in a terminal state.
var ErrRunNotCancellable = errors.New("run is in a terminal state and cannot be cancelled")

// AppError carries an HTTP-oriented status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an AppError for invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewNotFoundError creates an AppError for a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError for a uniqueness/state conflict.
func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: 409, Message: message, Err: err}
}
