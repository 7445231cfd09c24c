// Package value implements the expression engine's value lattice: the
// seven-variant tagged sum that every literal, operator reduction, and
// context lookup produces. Where the teacher (robpike.io/ivy) dispatches
// arithmetic through a Value interface implemented once per concrete
// numeric type, this package keeps Value a single tagged struct and
// drives arithmetic through explicit dispatch tables (see promote.go,
// arithmetic.go) — an open interface hierarchy can't be exhaustively
// pattern-matched, a closed tag can.
package value

import (
	"fmt"
	"math/big"
)

// Kind discriminates the seven Value variants.
type Kind uint8

const (
	Rational Kind = iota
	Double
	Bool
	Percent
	Vector
	Matrix
	FunctionKind
)

func (k Kind) String() string {
	switch k {
	case Rational:
		return "rational"
	case Double:
		return "double"
	case Bool:
		return "boolean"
	case Percent:
		return "percent"
	case Vector:
		return "vector"
	case Matrix:
		return "matrix"
	case FunctionKind:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the immutable result of evaluating a tree node. Exactly the
// field(s) matching Kind are meaningful; the rest are zero.
//
// Values are never mutated after construction: operators and context
// lookups always hand back a freshly built Value.
type Value struct {
	kind Kind

	rat *big.Rat // Rational
	dbl float64  // Double and Percent (percent stored as the number before /100, e.g. 11 for "11%")
	b   bool     // Bool

	vec []Value     // Vector
	mat *MatrixData // Matrix

	fn *Function // FunctionKind
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// MatrixData backs the Matrix variant: a rectangular, row-major grid.
// Invariant: every row has Cols entries (len(Data) == Rows*Cols), enforced
// by every constructor in this package.
type MatrixData struct {
	Rows, Cols int
	Data       []Value
}

// NewRational wraps an already-reduced *big.Rat. Callers that build a Rat
// by hand should go through big.Rat's own normalization (Rat.SetFrac does
// this); value never re-normalizes a rational it's handed.
func NewRational(r *big.Rat) Value {
	return Value{kind: Rational, rat: r}
}

// RationalFromInt64 builds an exact integer rational.
func RationalFromInt64(n int64) Value {
	return Value{kind: Rational, rat: big.NewRat(n, 1)}
}

// NewDouble builds a Double value. NaN and +/-Inf are legal.
func NewDouble(f float64) Value {
	return Value{kind: Double, dbl: f}
}

// NewBool builds a Boolean value.
func NewBool(b bool) Value {
	return Value{kind: Bool, b: b}
}

// NewPercent builds a Percent value logically representing pct/100; pct
// is the number as written (NewPercent(11) means "11%").
func NewPercent(pct float64) Value {
	return Value{kind: Percent, dbl: pct}
}

// NewVector builds a Vector from already-evaluated elements.
func NewVector(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: Vector, vec: cp}
}

// NewMatrix builds a Matrix from a row-major data slice. It returns a
// ShapeError if len(data) != rows*cols.
func NewMatrix(rows, cols int, data []Value) (Value, error) {
	if rows*cols != len(data) {
		return Value{}, shapeErrorf("matrix literal has %d cells, want %d (%d rows x %d cols)", len(data), rows*cols, rows, cols)
	}
	cp := make([]Value, len(data))
	copy(cp, data)
	return Value{kind: Matrix, mat: &MatrixData{Rows: rows, Cols: cols, Data: cp}}, nil
}

// NewMatrixFromRows builds a Matrix from a slice of equal-length rows,
// failing with ShapeError on a ragged literal (spec invariant 1).
func NewMatrixFromRows(rows [][]Value) (Value, error) {
	if len(rows) == 0 {
		return Value{kind: Matrix, mat: &MatrixData{Rows: 0, Cols: 0}}, nil
	}
	cols := len(rows[0])
	data := make([]Value, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Value{}, shapeErrorf("matrix row %d has %d entries, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return Value{kind: Matrix, mat: &MatrixData{Rows: len(rows), Cols: cols, Data: data}}, nil
}

// NewFunction builds a Function value. runtime is opaque here: only the
// eval package constructs and interprets it (see eval.boundFunction).
// This keeps package value from importing eval, which in turn needs
// value — the same cycle ivy breaks by making value.Context an
// interface implemented by exec.Context.
func NewFunction(name string, params []string, source string, runtime interface{}) Value {
	return Value{kind: FunctionKind, fn: &Function{Name: name, Params: append([]string(nil), params...), Source: source, Runtime: runtime}}
}

// Function is the data carried by a FunctionKind Value.
type Function struct {
	Name    string
	Params  []string
	Source  string
	Runtime interface{}
}

// Rat returns the underlying rational and whether v is a Rational.
func (v Value) Rat() (*big.Rat, bool) {
	if v.kind != Rational {
		return nil, false
	}
	return v.rat, true
}

// Float64 returns the underlying double and whether v is a Double.
func (v Value) Float64() (float64, bool) {
	if v.kind != Double {
		return 0, false
	}
	return v.dbl, true
}

// BoolValue returns the underlying boolean and whether v is a Bool.
func (v Value) BoolValue() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// PercentValue returns the underlying percent number (11 for "11%") and
// whether v is a Percent.
func (v Value) PercentValue() (float64, bool) {
	if v.kind != Percent {
		return 0, false
	}
	return v.dbl, true
}

// VectorElems returns the underlying elements and whether v is a Vector.
func (v Value) VectorElems() ([]Value, bool) {
	if v.kind != Vector {
		return nil, false
	}
	return v.vec, true
}

// MatrixValue returns the underlying grid and whether v is a Matrix.
func (v Value) MatrixValue() (*MatrixData, bool) {
	if v.kind != Matrix {
		return nil, false
	}
	return v.mat, true
}

// FunctionValue returns the underlying function data and whether v is a
// FunctionKind.
func (v Value) FunctionValue() (*Function, bool) {
	if v.kind != FunctionKind {
		return nil, false
	}
	return v.fn, true
}

// IsNumber reports whether v can participate in arithmetic on its own
// (i.e. is a scalar number: Rational, Double, Percent, or Bool).
func (v Value) IsNumber() bool {
	switch v.kind {
	case Rational, Double, Percent, Bool:
		return true
	default:
		return false
	}
}

// ShapeError is returned by NewMatrix/NewMatrixFromRows on a ragged
// literal. It's a distinct type (rather than errs.Error, which would
// pull github.com/pkg/errors into this leaf package) so callers in
// package eval can recognize it with errors.As and re-wrap it as
// errs.Shape.
type ShapeError string

func (e ShapeError) Error() string { return string(e) }

func shapeErrorf(format string, args ...interface{}) error {
	return ShapeError(fmt.Sprintf(format, args...))
}

// ShapeErrorf builds a ShapeError for callers outside this package.
func ShapeErrorf(format string, args ...interface{}) error {
	return shapeErrorf(format, args...)
}
