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

// ErrForbidden indicates the actor lacks the role required for the operation.
var ErrForbidden = errors.New("operation not permitted for this role")

// ErrNoUnbilledItems indicates an invoice generation run found nothing to bill.
// Surfaced to callers as a user-facing validation failure, never retried.
var ErrNoUnbilledItems = errors.New("no unbilled items for project")

// ErrInvalidDiscountConfig indicates a proposal or invoice carries both a percent
// and a fixed discount.
var ErrInvalidDiscountConfig = errors.New("discount percent and amount are mutually exclusive")

// ErrCreditOverAllocation indicates credit allocation math tried to draw more from an
// upfront invoice than its remaining credit. Internal invariant violation.
var ErrCreditOverAllocation = errors.New("credit allocation exceeds available upfront credit")

// ErrDuplicateInvoiceNumber indicates the invoice number sequencer exhausted its
// retry-with-increment loop without finding a free number.
var ErrDuplicateInvoiceNumber = errors.New("could not derive a unique invoice number")

// ErrExceedsRemainingAmount indicates a finder-fee payment would overpay the fee.
var ErrExceedsRemainingAmount = errors.New("payment exceeds remaining finder fee amount")

// ErrInvalidTransition indicates an invoice status change that the state machine forbids.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// ErrSourceAlreadyBilled indicates a timesheet entry, charge or expense is already
// referenced by a non-cancelled invoice.
var ErrSourceAlreadyBilled = errors.New("source item is already billed")

// AppError wraps an underlying error with an HTTP-equivalent code and message.
// Repositories use it so handlers can translate failures without inspecting SQL errors.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
