// Copyright (c) 2026 Ambutrack. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Ambutrack.

It provides the canonical error type used by every domain package to build its
closed, pattern-matchable error set.

Architecture:

  - AppError: A struct carrying a machine-readable Code and a client-safe message.
  - Sentinels: Domain packages declare `var Err... = apperr.New(code, msg)` values;
    callers match them with [errors.Is], which compares by Code.
  - Opaque causes: Infrastructure failures (store unreachable, RNG failure,
    serialization) are wrapped by [Internal] so the cause is preserved for
    logging but never becomes part of the typed contract.

Every error that leaves a service layer is either one of the domain's sentinel
values or an [Internal] wrapper, never a bare storage error.
*/
package apperr

import "errors"

// AppError is the canonical error type for the Ambutrack domain layers.
//
// # Security
//
// The Cause field is for server-side logging only and must never be surfaced
// to untrusted callers; Message is the only client-safe text.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "USER_NOT_FOUND").
	Code string
	// Message is a human-readable description safe to show to a caller.
	Message string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
}

// CodeInternal is the code shared by all opaque infrastructure failures.
const CodeInternal = "INTERNAL_ERROR"

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an [*AppError] with the same Code.
//
// Matching by code rather than pointer identity lets wrapped copies of a
// sentinel (e.g. one carrying a cause) still satisfy errors.Is against the
// bare sentinel value.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// New creates an [AppError] sentinel with the given code and message.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Internal wraps an unexpected infrastructure error.
// The cause is retained for logging but callers only see the generic code.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// IsInternal reports whether err is an opaque infrastructure failure.
func IsInternal(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == CodeInternal
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
