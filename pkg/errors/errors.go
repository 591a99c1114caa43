// Package errors provides error handling for schemagen.
//
// This package re-exports github.com/cockroachdb/errors and defines the
// sentinels every generation and contract failure is marked with.
//
// Usage:
//
//	// Wrap with context and keep the category
//	return errors.Mark(errors.Wrapf(err, "read schema %s", path), errors.ErrIO)
//
//	// Add hints for users
//	return errors.WithHint(err, "declare the struct under structs:")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnresolvedReference) {
//	    // the schema names a struct it never declares
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

// Sentinel errors. Failures are marked with one of these via Mark so that
// errors.Is keeps working after any amount of wrapping.
var (
	// ErrParse indicates the schema document is malformed or uses unknown keys
	ErrParse = New("schema parse error")

	// ErrIO indicates the schema could not be read or the output could not be written
	ErrIO = New("i/o error")

	// ErrUnresolvedReference indicates a struct reference with no matching declaration
	ErrUnresolvedReference = New("unresolved struct reference")

	// ErrContractMissing indicates a request carried no checksum header
	ErrContractMissing = New("contract checksum missing")

	// ErrContractMismatch indicates a request carried a checksum for a different schema
	ErrContractMismatch = New("contract checksum mismatch")

	// ErrInvalidConfig indicates a configuration value is missing or malformed
	ErrInvalidConfig = New("invalid configuration")
)

// IsGenerationError reports whether err belongs to the generation failure family.
func IsGenerationError(err error) bool {
	return err != nil && IsAny(err, ErrParse, ErrIO, ErrUnresolvedReference)
}
