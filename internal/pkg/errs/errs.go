/*
Package errs defines the application error type and the error code taxonomy.

This file defines CustomError, which implements the error interface and carries
a business code, a client-facing message, and the HTTP status used when the
error reaches the response layer.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"wsrelay/internal/pkg/logx"
)

// CustomError is the error type used across the service. It pairs a stable
// business code with the HTTP status the response layer should emit.
type CustomError struct {
	// Code is the business error code (see error_codes.go).
	Code int

	// Message is the client-facing description.
	Message string

	// Status is the HTTP status code for this error.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a predefined code. Optional details are
// applied printf-style when the message template has placeholders. An unknown
// code degrades to ErrUnknown rather than panicking.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown error code %d requested", code),
			"errs.NewError called with a code missing from errorMap",
		)
		unknown := errorMap[ErrUnknown]
		return &unknown
	}

	customErr := template

	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if len(details) > 0 && strings.Contains(customErr.Message, "%") {
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	}

	return &customErr
}
