// Package errors defines the structured error taxonomy shared by the
// Cumin parser and evaluator: ParseError, NameError, TypeError,
// ArgumentError, EnumError, ModuleError, and FormatError.
//
// Every Cumin-specific error carries a Kind so callers can branch on
// failure category without string matching, plus a human-readable
// message. ParseError additionally carries the unparsed source suffix,
// per the source behavior of reporting only a textual snippet rather
// than line/column positions.
package errors

import (
	"fmt"
	"strings"
)

// Kind enumerates the Cumin error categories.
type Kind int

const (
	// Parse indicates the grammar did not accept the input.
	Parse Kind = iota
	// Name indicates an identifier failed to resolve to any binding.
	Name
	// Type indicates operand types disagreed, a cast failed, or array
	// element unification failed.
	Type
	// Argument indicates too many positional args, a missing required
	// field/arg, or an unknown keyword.
	Argument
	// Enum indicates a referenced enum variant does not exist.
	Enum
	// Module indicates a file could not be found or read during `use`.
	Module
	// Format indicates an unrecognized output format flag.
	Format
)

// String returns the taxonomy name used as the error message prefix.
func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case Name:
		return "NameError"
	case Type:
		return "TypeError"
	case Argument:
		return "ArgumentError"
	case Enum:
		return "EnumError"
	case Module:
		return "ModuleError"
	case Format:
		return "FormatError"
	default:
		return "Error"
	}
}

// Error is a structured Cumin error: a Kind plus message, with an
// optional unparsed suffix for parse failures.
type Error struct {
	kind    Kind
	message string
	// suffix holds the remaining unparsed input for Parse errors.
	// Truncated to a short prefix so error output stays one snippet,
	// never a full source dump.
	suffix string
}

const maxSuffixLen = 60

// New builds a Kind-tagged error with the given message.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf builds a Kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// WithSuffix attaches the unparsed remainder of the input to a ParseError,
// truncating long suffixes to keep the message readable.
func (e *Error) WithSuffix(suffix string) *Error {
	suffix = strings.TrimLeft(suffix, " \t\r\n")
	if len(suffix) > maxSuffixLen {
		suffix = suffix[:maxSuffixLen] + "..."
	}
	e.suffix = suffix
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.suffix != "" {
		return fmt.Sprintf("%s: %s (at: %q)", e.kind, e.message, e.suffix)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Kind returns the error's taxonomy category.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the bare message, without kind prefix or suffix.
func (e *Error) Message() string { return e.message }

// Suffix returns the unparsed remainder, or "" if none was recorded.
func (e *Error) Suffix() string { return e.suffix }

// ParseErrorf is a convenience constructor for Parse-kind errors.
func ParseErrorf(format string, args ...any) *Error { return Newf(Parse, format, args...) }

// NameErrorf is a convenience constructor for Name-kind errors.
func NameErrorf(format string, args ...any) *Error { return Newf(Name, format, args...) }

// TypeErrorf is a convenience constructor for Type-kind errors.
func TypeErrorf(format string, args ...any) *Error { return Newf(Type, format, args...) }

// ArgumentErrorf is a convenience constructor for Argument-kind errors.
func ArgumentErrorf(format string, args ...any) *Error { return Newf(Argument, format, args...) }

// EnumErrorf is a convenience constructor for Enum-kind errors.
func EnumErrorf(format string, args ...any) *Error { return Newf(Enum, format, args...) }

// ModuleErrorf is a convenience constructor for Module-kind errors.
func ModuleErrorf(format string, args ...any) *Error { return Newf(Module, format, args...) }

// FormatErrorf is a convenience constructor for Format-kind errors.
func FormatErrorf(format string, args ...any) *Error { return Newf(Format, format, args...) }

// Is reports whether err is itself a *Error of the given kind. It does
// not unwrap: an *Error wrapped by fmt.Errorf("...: %w", err) reports
// false.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == kind
}
