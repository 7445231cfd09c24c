package value

import "fmt"

// TypeError and ArithmeticError are the two other failure shapes that can
// arise purely from lattice arithmetic (ShapeError, in value.go, is the
// third). All three are plain string-backed error types rather than
// errs.Error so this package never needs to import github.com/pkg/errors;
// package eval recognizes them with errors.As and re-wraps them with the
// matching errs.Kind.
type TypeError string

func (e TypeError) Error() string { return string(e) }

func typeErrorf(format string, args ...interface{}) error {
	return TypeError(fmt.Sprintf(format, args...))
}

// TypeErrorf builds a TypeError for callers outside this package (e.g.
// package registry's container and conversion operators).
func TypeErrorf(format string, args ...interface{}) error {
	return typeErrorf(format, args...)
}

type ArithmeticError string

func (e ArithmeticError) Error() string { return string(e) }

func arithmeticErrorf(format string, args ...interface{}) error {
	return ArithmeticError(fmt.Sprintf(format, args...))
}

// ArithmeticErrorf builds an ArithmeticError for callers outside this
// package.
func ArithmeticErrorf(format string, args ...interface{}) error {
	return arithmeticErrorf(format, args...)
}
