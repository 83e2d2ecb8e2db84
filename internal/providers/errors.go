package providers

import (
	"errors"
	"fmt"
)

// AuthRequiredError means no credential was available; the network was
// never contacted. Not cached, not retried automatically.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string {
	return "sign in to see your fortune"
}

// UnauthorizedError means the backend rejected the credential.
type UnauthorizedError struct {
	Provider string
	Message  string
}

func (e *UnauthorizedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("credential rejected: %s", e.Message)
	}
	return "credential rejected"
}

// NotFoundError means the request was valid but no fortune exists for
// that day. A benign empty state, not a fault.
type NotFoundError struct {
	Provider string
	Date     string
}

func (e *NotFoundError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("no fortune for %s", e.Date)
	}
	return "no fortune for that day"
}

// TransportError wraps network/IO failures. Retryable by an explicit
// follow-up request.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection problem, try again: %v", e.Err)
	}
	return "connection problem, try again"
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the payload did not match the expected
// schema. Non-retryable without a client update; a defect signal.
type MalformedResponseError struct {
	Provider string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable response: %v", e.Err)
	}
	return "unreadable response"
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AsAuthRequiredError attempts to unwrap an error into an AuthRequiredError.
func AsAuthRequiredError(err error) (*AuthRequiredError, bool) {
	var target *AuthRequiredError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsUnauthorizedError attempts to unwrap an error into an UnauthorizedError.
func AsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	var target *UnauthorizedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsNotFoundError attempts to unwrap an error into a NotFoundError.
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var target *NotFoundError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var target *TransportError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsMalformedResponseError attempts to unwrap an error into a MalformedResponseError.
func AsMalformedResponseError(err error) (*MalformedResponseError, bool) {
	var target *MalformedResponseError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Classify maps any error onto the taxonomy. Errors already in the
// taxonomy pass through; anything else is treated as a transport failure
// so it surfaces as retryable rather than escaping untyped.
func Classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsAuthRequiredError(err); ok {
		return err
	}
	if _, ok := AsUnauthorizedError(err); ok {
		return err
	}
	if _, ok := AsNotFoundError(err); ok {
		return err
	}
	if _, ok := AsTransportError(err); ok {
		return err
	}
	if _, ok := AsMalformedResponseError(err); ok {
		return err
	}
	return &TransportError{Provider: provider, Err: err}
}
