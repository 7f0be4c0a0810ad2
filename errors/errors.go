// Package errors provides error handling for satgraph.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI output
//
// Usage:
//
//	// Wrap with context
//	if err := readHeader(r); err != nil {
//	    return errors.Wrap(err, "failed to read SAT header")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "check that the file is an ACIS text (.sat) export")
//
//	// Check errors
//	if errors.Is(err, errors.ErrMalformedHeader) {
//	    // nothing downstream is interpretable
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack returns the reportable stack trace attached to err, if any.
var GetStack = crdb.GetReportableStackTrace

// Sentinel errors shared across satgraph.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested entity, file or row does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates a malformed argument or configuration value
	ErrInvalidRequest = New("invalid request")

	// ErrMalformedHeader indicates the fixed 3-line SAT header could not be read.
	// This is the only fatal parse failure.
	ErrMalformedHeader = New("malformed SAT header")

	// ErrMalformedRecord indicates a single entity record could not be extracted
	ErrMalformedRecord = New("malformed entity record")

	// ErrUnsupported indicates an input variant that is recognised but not handled
	ErrUnsupported = New("unsupported")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsMalformedHeader checks if an error is or wraps ErrMalformedHeader
func IsMalformedHeader(err error) bool {
	return err != nil && Is(err, ErrMalformedHeader)
}

// IsMalformedRecord checks if an error is or wraps ErrMalformedRecord
func IsMalformedRecord(err error) bool {
	return err != nil && Is(err, ErrMalformedRecord)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidRequest, format, args...)
}

// NewMalformedRecordError creates a malformed-record error with a formatted message
func NewMalformedRecordError(format string, args ...interface{}) error {
	return Wrapf(ErrMalformedRecord, format, args...)
}
