package partscout

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Each code maps to one failure kind callers can act on. Transport-specific
// layers (HTTP API, CLI) translate codes, never the underlying diagnostics.
const (
	EINVALID     = "invalid"      // input failed the part-number grammar
	ENOTFOUND    = "not_found"    // upstream or storage has no data for the key
	ENODATA      = "no_data"      // page was valid but nothing usable was extracted
	ERATELIMITED = "rate_limited" // local limiter or upstream refused; wait and retry
	EBLOCKED     = "blocked"      // upstream anti-automation page
	ETIMEOUT     = "timeout"
	ECONNECT     = "connect"
	EUNAVAILABLE = "unavailable" // upstream 5xx
	ENOOCR       = "no_ocr"      // OCR engine is not installed or configured
	EOCR         = "ocr"         // OCR engine ran and failed
	EINTERNAL    = "internal"
)

// Error represents an application-specific error.
type Error struct {
	// Code is machine-readable and one of the constants above.
	Code string

	// Message is human-readable and safe to show to the user.
	Message string

	// Err is the original diagnostic, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the original diagnostic.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an Error with the given code that keeps err as its cause.
func Wrap(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsNotFound reports whether the caller should treat err as "no such part".
// Extraction failures on a valid page count as not found.
func IsNotFound(err error) bool {
	switch ErrorCode(err) {
	case ENOTFOUND, ENODATA:
		return true
	}
	return false
}

// IsTransient reports whether retrying later may succeed.
func IsTransient(err error) bool {
	switch ErrorCode(err) {
	case ERATELIMITED, EBLOCKED, ETIMEOUT, ECONNECT, EUNAVAILABLE:
		return true
	}
	return false
}
