package util

import "fmt"

// ErrorCode classifies errors raised by the hardware line driver
type ErrorCode int32

const (
	// EC_AccessDenied means the underlying hardware resource could not be
	// opened, usually because the process lacks the required privilege
	EC_AccessDenied ErrorCode = 100
	// EC_UnavailableLine means a requested output line could not be claimed
	// (out of range or already in use)
	EC_UnavailableLine ErrorCode = 101
	// EC_WriteFailure means an output write failed after the driver had been
	// successfully configured
	EC_WriteFailure ErrorCode = 102
	// EC_Internal is any other unexpected failure
	EC_Internal ErrorCode = 200
)

// Error is an error with a driver error code, an optional name of the thing
// that caused it, and an optional underlying cause
type Error struct {
	Code    ErrorCode
	Message string
	Name    string
	Cause   error
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{code, message, "", nil}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

var _ error = &Error{}

// NewAccessDeniedError creates an Error for a hardware resource that could
// not be opened
func NewAccessDeniedError(resource string, cause error) *Error {
	return &Error{EC_AccessDenied,
		fmt.Sprintf("could not open %s", resource), resource, cause}
}

// NewUnavailableLineError creates an Error for a line that could not be
// claimed as an output
func NewUnavailableLineError(line string, reason string) *Error {
	return &Error{EC_UnavailableLine,
		fmt.Sprintf("line %s unavailable: %s", line, reason), line, nil}
}

// NewWriteFailureError creates an Error for an output write that failed after
// configuration succeeded
func NewWriteFailureError(line string, cause error) *Error {
	return &Error{EC_WriteFailure,
		fmt.Sprintf("could not write %s", line), line, cause}
}

func NewInternalError(cause error) *Error {
	return &Error{EC_Internal, "internal error", "", cause}
}

// ErrorCodeOf returns the ErrorCode of err if it is an *Error, or EC_Internal
// otherwise
func ErrorCodeOf(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return EC_Internal
}
