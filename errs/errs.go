// Package errs defines the small, closed set of error kinds the
// expression engine can raise. Every public entry point returns one of
// these rather than a bare error string, so callers (the REPL, the
// domain libraries) can branch on Kind without parsing messages.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an engine failure.
type Kind int

const (
	// Syntax covers malformed source: unbalanced brackets, bad argument
	// counts, an operator the parser doesn't recognise mid-expression.
	Syntax Kind = iota
	// Name covers a reference to an unbound identifier.
	Name
	// Type covers arithmetic between incompatible variants, or a
	// caller asking for a Double from a non-numeric result.
	Type
	// Shape covers ragged matrix literals and inner-product dimension
	// mismatches.
	Shape
	// Arithmetic covers exact division by zero and exhausted
	// continued-fraction budgets.
	Arithmetic
	// Collision covers defining a variable or function under the name
	// of an existing operator alias.
	Collision
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Name:
		return "NameError"
	case Type:
		return "TypeError"
	case Shape:
		return "ShapeError"
	case Arithmetic:
		return "ArithmeticError"
	case Collision:
		return "NameCollision"
	default:
		return "Error"
	}
}

// Error is the engine's single error type. Kind identifies which of the
// six failure categories applies; the wrapped cause (built through
// github.com/pkg/errors so a stack trace rides along for verbose
// diagnostics) carries the human-readable detail.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given kind from a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Wrap attaches a kind to an existing error, preserving it as the cause.
func Wrap(kind Kind, err error, context string) *Error {
	return &Error{Kind: kind, cause: errors.Wrap(err, context)}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
