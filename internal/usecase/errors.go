package usecase

import (
	"errors"
)

// Kind classifies a service failure; handlers map it to an HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindReference
	KindNotFound
	KindConflict
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindReference:
		return "reference"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is the only error type services return to handlers.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages keyed by JSON name
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// FieldValidationError reports struct tag failures under a summary message.
func FieldValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func AuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func ReferenceError(message string) *Error {
	return &Error{Kind: KindReference, Message: message}
}

func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func ConflictError(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

// StoreError wraps a data-access failure. The raw description is the message.
func StoreError(err error) *Error {
	return &Error{Kind: KindStore, Message: err.Error(), Err: err}
}

// AsError extracts the service error from err's chain.
func AsError(err error) (*Error, bool) {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// asServiceError keeps typed errors returned from inside a transaction and
// treats everything else as a store failure.
func asServiceError(err error) *Error {
	if svcErr, ok := AsError(err); ok {
		return svcErr
	}
	return StoreError(err)
}
