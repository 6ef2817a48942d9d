package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure coarsely enough for the UI to pick a
// user-facing message and for the chat service to decide whether to record
// usage.
type ErrorKind string

const (
	// KindNotFound indicates an unknown model or provider id.
	KindNotFound ErrorKind = "not_found"

	// KindConfiguration indicates a model referencing an unregistered
	// provider, or a malformed catalog entry.
	KindConfiguration ErrorKind = "configuration_error"

	// KindAuthMissing indicates a missing or rejected provider credential.
	KindAuthMissing ErrorKind = "auth_missing"

	// KindRateLimited indicates the vendor throttled the request.
	KindRateLimited ErrorKind = "rate_limited"

	// KindProvider indicates a vendor-side failure, including malformed
	// responses and call timeouts.
	KindProvider ErrorKind = "provider_error"

	// KindUnknown indicates an uncategorized vendor failure.
	KindUnknown ErrorKind = "unknown"
)

// Error is a typed failure carrying a coarse kind and a human-readable
// message. Every provider adapter converts raw vendor faults into an *Error
// before returning; raw faults never cross the adapter boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// NewError creates a typed error without a cause.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: nil}
}

// WrapError creates a typed error wrapping an underlying cause.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Errorf creates a typed error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: nil}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the kind from an error chain.
// Errors that are not typed report KindUnknown.
func KindOf(err error) ErrorKind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindUnknown
}

// MessageOf extracts the human-readable message from an error chain,
// falling back to the raw error text.
func MessageOf(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
