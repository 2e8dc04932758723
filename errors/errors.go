// Package errors provides error handling for rust-swig.
//
// It re-exports github.com/cockroachdb/errors (stack traces, wrapping,
// hints) and defines the sentinel errors of the conversion engine's
// failure taxonomy. Path and mapping failures are fatal for the single
// method or argument being processed; rule conflicts and missing-class
// warnings are diagnostics and never abort a generation run.
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
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Failure taxonomy of the conversion engine. Wrap these to add context
// while preserving the class; check with Is* helpers.
var (
	// ErrNoConversionPath: neither direct search nor speculative path
	// building connected a concrete (from, to) type pair.
	ErrNoConversionPath = New("no conversion path")

	// ErrNoForeignCounterpart: the foreign mapper exhausted cache, direct
	// search, and candidate synthesis for an internal type.
	ErrNoForeignCounterpart = New("no foreign counterpart")

	// ErrRuleConflict: a merged rule batch carried an edge for a type pair
	// that already has one. The earlier edge wins; non-fatal.
	ErrRuleConflict = New("conversion rule conflict")

	// ErrMissingClass: a foreign-candidate synthesis found a capability
	// match with no declared class backing it. The candidate is skipped;
	// non-fatal.
	ErrMissingClass = New("no declared class for type")

	// ErrInvalidDeclaration: a malformed class/method/enum declaration.
	// Fatal for that declaration, tied to its source location.
	ErrInvalidDeclaration = New("invalid declaration")
)

// NoConversionPath builds the fatal path failure for a (from, to) pair,
// carrying both endpoint spellings and the call-site context.
func NoConversionPath(from, to, context string) error {
	err := Wrapf(ErrNoConversionPath, "cannot convert from type '%s' to type '%s'", from, to)
	if context != "" {
		err = WithDetailf(err, "in this context: %s", context)
	}
	return err
}

// NoForeignCounterpart builds the fatal mapping failure for an internal
// type in the given direction ("outgoing" or "incoming").
func NoForeignCounterpart(internal, direction string) error {
	return Wrapf(ErrNoForeignCounterpart, "no foreign type corresponds to '%s' (%s)", internal, direction)
}

// InvalidDeclaration builds the fatal declaration failure tied to a
// source location.
func InvalidDeclaration(srcID, name, reason string) error {
	return Wrapf(ErrInvalidDeclaration, "%s: %s: %s", srcID, name, reason)
}

// IsNoConversionPath reports whether err is or wraps ErrNoConversionPath.
func IsNoConversionPath(err error) bool {
	return err != nil && Is(err, ErrNoConversionPath)
}

// IsNoForeignCounterpart reports whether err is or wraps ErrNoForeignCounterpart.
func IsNoForeignCounterpart(err error) bool {
	return err != nil && Is(err, ErrNoForeignCounterpart)
}

// IsInvalidDeclaration reports whether err is or wraps ErrInvalidDeclaration.
func IsInvalidDeclaration(err error) bool {
	return err != nil && Is(err, ErrInvalidDeclaration)
}
