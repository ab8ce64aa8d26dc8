package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessCode is returned for a processing that did not fail.
	SuccessCode = 0

	// All errors that were not created from a registered root error are
	// clubbed under the internal code and a generic message instead of
	// the detailed error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the error code and the message that can be safely returned
// to a client. Any error that does not wrap a registered root error is
// categorized as internal with code 1.
// When not running in a debug mode the messages of internal errors and
// recovered panics are replaced with a generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessCode, ""
	}

	code := Code(err)
	if debug {
		// Try to trigger full information formatting. This
		// might produce a stacktrace.
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode || code == ErrPanic.code {
		return internalCode, internalLog
	}
	return code, err.Error()
}

type coder interface {
	Code() uint32
}

// Code returns the code of the root error wrapped by given error. Errors
// that were not created from a registered root error have code 1.
func Code(err error) uint32 {
	if errIsNil(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Redact replaces a recovered panic with a generic internal error so that no
// system information leaks to a client.
func Redact(err error) error {
	if ErrPanic.Is(err) {
		return usedCodes[internalCode]
	}
	return err
}

// errIsNil returns true if value represented by the given error is nil.
//
// Most of the time a simple == check is enough. There is a very narrowed
// spectrum of cases (mostly in tests) where a more sophisticated check is
// required.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
