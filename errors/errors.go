// Package errors provides error handling for implgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI users
//
// and defines the engine's error taxonomy:
//
//	ErrNotApplicable     nothing to implement (a no-op, never a failure)
//	ErrUnresolvable      a type or contract needed for generation is unknown (fatal)
//	ErrContractNotFound  the selected interface does not exist (caller error)
//	ErrInvalidRequest    the request itself is malformed
//
// Usage:
//
//	if err := src.Type(ctx, ref); err != nil {
//	    return errors.WrapUnresolvable(err, ref.String())
//	}
//
//	if errors.IsNotApplicable(err) {
//	    // report "nothing to implement"
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
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
	Mark             = crdb.Mark
)

// Sentinel errors for the generation pipeline.
// Use these with errors.Is(); wrap them with Wrap() to add context.
var (
	// ErrNotApplicable indicates there is nothing to implement
	ErrNotApplicable = New("nothing to implement")

	// ErrUnresolvable indicates a referenced type or contract could not be resolved
	ErrUnresolvable = New("unresolvable symbol")

	// ErrContractNotFound indicates the selected interface does not exist
	ErrContractNotFound = New("interface not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")
)

// IsNotApplicable checks if an error is or wraps ErrNotApplicable
func IsNotApplicable(err error) bool {
	return err != nil && Is(err, ErrNotApplicable)
}

// IsUnresolvable checks if an error is or wraps ErrUnresolvable
func IsUnresolvable(err error) bool {
	return err != nil && Is(err, ErrUnresolvable)
}

// IsContractNotFound checks if an error is or wraps ErrContractNotFound
func IsContractNotFound(err error) bool {
	return err != nil && Is(err, ErrContractNotFound)
}

// IsInvalidRequest checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequest(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// WrapUnresolvable marks err as unresolvable while keeping its message.
// The symbol name is attached as context.
func WrapUnresolvable(err error, symbol string) error {
	if err == nil {
		return nil
	}
	return Wrapf(Mark(err, ErrUnresolvable), "cannot resolve %s", symbol)
}

// NewUnresolvablef creates an unresolvable error with a formatted message
func NewUnresolvablef(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnresolvable)
}

// NewContractNotFoundf creates a not-found error for a contract reference
func NewContractNotFoundf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrContractNotFound)
}

// NewInvalidRequestf creates an invalid-request error with a formatted message
func NewInvalidRequestf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidRequest)
}

// NewNotApplicablef creates a not-applicable error with a formatted message
func NewNotApplicablef(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotApplicable)
}
