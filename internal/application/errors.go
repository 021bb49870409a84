package application

import (
	"errors"
	"fmt"
)

// The three error kinds a use case may surface to Saleor. Every fallible step
// inside a use case returns a plain error; the use case wraps the first
// failure into exactly one of these and stops.

const (
	ErrCodeAppNotConfigured = "APP_NOT_CONFIGURED"
	ErrCodeMalformedRequest = "MALFORMED_REQUEST"
	ErrCodeBrokenApp        = "BROKEN_APP"
)

// AppIsNotConfiguredError means no provider configuration exists for the
// (Saleor installation, channel) pair. A setup problem, not a caller bug.
type AppIsNotConfiguredError struct {
	Message string
	Err     error
}

func (e *AppIsNotConfiguredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppIsNotConfiguredError) Unwrap() error { return e.Err }

func NewAppIsNotConfiguredError(message string, err error) *AppIsNotConfiguredError {
	return &AppIsNotConfiguredError{Message: message, Err: err}
}

// MalformedRequestError means the inbound event carries input this app cannot
// act on: an unsupported currency, an unknown payment method, unexpected
// fields in the opaque data payload.
type MalformedRequestError struct {
	Message string
	Err     error
}

func (e *MalformedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

func NewMalformedRequestError(message string, err error) *MalformedRequestError {
	return &MalformedRequestError{Message: message, Err: err}
}

// BrokenAppError covers everything that is the app's or the provider's fault:
// failed provider calls, provider responses missing required fields, recorder
// failures, lifecycle events arriving for transactions that were never
// recorded.
type BrokenAppError struct {
	Message string
	Err     error
}

func (e *BrokenAppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BrokenAppError) Unwrap() error { return e.Err }

func NewBrokenAppError(message string, err error) *BrokenAppError {
	return &BrokenAppError{Message: message, Err: err}
}

// ErrorCode maps a use-case error to its wire code. Unrecognized errors count
// as broken-app so a webhook handler never leaks an unclassified failure.
func ErrorCode(err error) string {
	var (
		notConfigured *AppIsNotConfiguredError
		malformed     *MalformedRequestError
	)
	switch {
	case errors.As(err, &notConfigured):
		return ErrCodeAppNotConfigured
	case errors.As(err, &malformed):
		return ErrCodeMalformedRequest
	default:
		return ErrCodeBrokenApp
	}
}
