package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors classify failures across layers. Wrap them in a DomainError
// and test with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state transition")
	ErrUnavailable  = errors.New("upstream unavailable")
	ErrRejected     = errors.New("rejected by upstream")
)

// DomainError carries a sentinel and a human readable message.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Err: ErrNotFound, Message: fmt.Sprintf("%s %q not found", entity, id)}
}

// NewValidationError reports input that failed a precondition.
func NewValidationError(message string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: message}
}

// NewConflictError reports a concurrent modification.
func NewConflictError(message string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: message}
}

// NewInvalidStateError reports an illegal status transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{Err: ErrInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnavailableError reports a transport failure talking to an upstream.
func NewUnavailableError(message string, cause error) *DomainError {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &DomainError{Err: ErrUnavailable, Message: message}
}

// NewRejectedError reports an upstream that answered but refused the operation.
func NewRejectedError(message string) *DomainError {
	return &DomainError{Err: ErrRejected, Message: message}
}

// MessageOf returns the user facing message of a DomainError, or the plain error text.
func MessageOf(err error) string {
	var domErr *DomainError
	if errors.As(err, &domErr) && domErr.Message != "" {
		return domErr.Message
	}
	return err.Error()
}
