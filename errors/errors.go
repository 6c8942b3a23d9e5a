// Package errors provides error handling for glenum.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap with context
//	if err := walk(); err != nil {
//	    return errors.Wrap(err, "failed to read registry")
//	}
//
//	// Attach the offending token
//	return errors.WithDetailf(errors.Wrap(ErrInvalidLiteral, "bad value"), "value: %q", raw)
//
//	// Classify
//	if errors.Is(err, errors.ErrMalformedInput) {
//	    // structural failure
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
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	FlattenHints   = crdb.FlattenHints
	GetAllHints    = crdb.GetAllHints
	FlattenDetails = crdb.FlattenDetails
	GetAllDetails  = crdb.GetAllDetails
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the registry pipeline.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMalformedInput indicates the registry document is structurally broken
	// (no document, no root container, unclosed section, XML syntax error).
	ErrMalformedInput = New("malformed input")

	// ErrInvalidLiteral indicates a numeric literal could not be parsed
	ErrInvalidLiteral = New("invalid numeric literal")

	// ErrOutOfRange indicates a magnitude does not fit any supported width
	ErrOutOfRange = New("value out of representable range")

	// ErrMissingAttribute indicates a required attribute is absent
	ErrMissingAttribute = New("missing required attribute")

	// ErrDuplicateEnumerant indicates the same name was accepted twice
	ErrDuplicateEnumerant = New("duplicate enumerant")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsStructural reports whether err is a structural (whole-document) failure.
func IsStructural(err error) bool {
	return err != nil && Is(err, ErrMalformedInput)
}

// IsEntryError reports whether err is scoped to a single registry entry.
// Entry errors may be skipped when the build runs in lenient mode.
func IsEntryError(err error) bool {
	return err != nil && IsAny(err, ErrInvalidLiteral, ErrOutOfRange, ErrMissingAttribute, ErrDuplicateEnumerant)
}

// NewMalformedError creates a structural error with a formatted message
func NewMalformedError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedInput, Newf(format, args...).Error())
}

// WrapInvalidConfig marks a validation message as a configuration error
func WrapInvalidConfig(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
