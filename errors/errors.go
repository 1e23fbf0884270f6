// Package errors provides error handling for witgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// On top of that it defines the error kinds a generation run can end with.
// Callers classify failures with errors.Is against the sentinels below:
//
//	if errors.Is(err, errors.ErrNamingPolicy) {
//	    // an identifier contains a digit or "stream"
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"fmt"

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

// Error kinds of a generation run.
var (
	// ErrNamingPolicy indicates an identifier contains a digit or "stream".
	// Fatal: every later name would be unreliable.
	ErrNamingPolicy = New("naming policy violation")

	// ErrSourceParse indicates a project's source could not be read or parsed
	ErrSourceParse = New("source read or parse failure")

	// ErrMissingAnnotation indicates a process directive lacks its world metadata.
	// Not fatal: the block is skipped and the run continues.
	ErrMissingAnnotation = New("missing annotation metadata")

	// ErrWrite indicates the output directory or a file could not be written
	ErrWrite = New("write failure")

	// ErrDeclarationCollision indicates two declarations normalize to the same name
	// while the reject collision policy is active
	ErrDeclarationCollision = New("declaration name collision")

	// ErrOutOfDate indicates generated files differ from the files on disk
	ErrOutOfDate = New("generated files are out of date")

	// ErrInvalidConfig indicates a configuration value is not acceptable
	ErrInvalidConfig = New("invalid configuration")
)

// NamingError reports an identifier rejected by the naming policy.
// It matches ErrNamingPolicy under errors.Is.
type NamingError struct {
	Name   string // raw identifier as written in source
	Kind   string // category label, e.g. "field" or "function"
	Reason string // "numbers" or "'stream'"
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("%s name '%s' contains %s, which is not allowed", e.Kind, e.Name, e.Reason)
}

// Is makes every NamingError match ErrNamingPolicy.
func (e *NamingError) Is(target error) bool {
	return target == ErrNamingPolicy
}

// NewNamingError creates a naming policy violation with a user hint attached
func NewNamingError(name, kind, reason string) error {
	return WithHint(
		WithStack(&NamingError{Name: name, Kind: kind, Reason: reason}),
		"rename the identifier: WIT names may not contain digits or the word 'stream'",
	)
}

// IsNamingError checks if an error is or wraps a naming policy violation
func IsNamingError(err error) bool {
	return err != nil && Is(err, ErrNamingPolicy)
}

// IsMissingAnnotation checks if an error is or wraps ErrMissingAnnotation
func IsMissingAnnotation(err error) bool {
	return err != nil && Is(err, ErrMissingAnnotation)
}

// WrapSourceParse marks err as a source failure for the given path
func WrapSourceParse(err error, path string) error {
	return Wrapf(Mark(err, ErrSourceParse), "failed to load source %s", path)
}

// WrapWrite marks err as a write failure for the given path
func WrapWrite(err error, path string) error {
	return Wrapf(Mark(err, ErrWrite), "failed to write %s", path)
}
