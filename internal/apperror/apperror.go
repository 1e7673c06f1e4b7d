// Package apperror defines the error taxonomy shared by every repository
// contract. A repository method never lets a driver fault escape raw: it is
// converted to an *Error carrying one of the codes below, so callers can
// branch on the code without knowing which store produced it.
package apperror

import (
	"context"
	"errors"
	"fmt"
)

// Code classifies a failure. The set is closed; presentation maps each code
// to a user-facing status.
type Code string

const (
	CodeUnknown        Code = "UNKNOWN"
	CodeNetwork        Code = "NETWORK"
	CodeAuthentication Code = "AUTHENTICATION"
	CodeAuthorization  Code = "AUTHORIZATION"
	CodeNotFound       Code = "NOT_FOUND"
	CodeValidation     Code = "VALIDATION"
	CodeConflict       Code = "CONFLICT"
)

// Error is the uniform failure value returned across repository boundaries.
// Err retains the underlying fault for diagnostics; callers must not
// pattern-match on its shape.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an Error that retains cause under the taxonomy code.
// Context cancellation and deadline expiry are classified as NETWORK
// regardless of the requested code, so a timed-out store round-trip is
// distinguishable from a store fault.
func Wrap(code Code, message string, cause error) *Error {
	if errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, context.Canceled) {
		code = CodeNetwork
	}
	return &Error{Code: code, Message: message, Err: cause}
}

// NotFound reports a lookup that matched no document.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Validation reports a business-rule breach detected before any write.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// Conflict reports a lost concurrency race or uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// Unknown wraps an unclassified store fault.
func Unknown(message string, cause error) *Error {
	return Wrap(CodeUnknown, message, cause)
}

// CodeOf extracts the taxonomy code from err, or CodeUnknown when err does
// not carry one.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
