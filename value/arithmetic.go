package value

import (
	"math"
	"math/big"
)

// scalarOp reduces two scalar operands to a single Value. Containers are
// handled by the broadcast wrapper below; scalarOp only ever sees
// Rational/Double/Percent/Bool on both sides.
type scalarOp struct {
	rat   func(a, b *big.Rat) (Value, error) // both operands rank 0 (Rational/Bool)
	float func(a, b float64) (Value, error)  // at least one operand ranks > 0, or rat is nil
	name  string
}

func (op scalarOp) apply(a, b Value) (Value, error) {
	if a.kind == FunctionKind || b.kind == FunctionKind {
		return Value{}, typeErrorf("cannot do arithmetic on functions")
	}
	if op.rat != nil && scalarRank(a.kind) == 0 && scalarRank(b.kind) == 0 {
		ra, rb := asRat(a), asRat(b)
		return op.rat(ra, rb)
	}
	// Percent <> Percent stays Percent (decided in SPEC_FULL.md §9.1);
	// any other mix promotes to Double after percent/100 reduction.
	if a.kind == Percent && b.kind == Percent && op.float != nil {
		v, err := op.float(a.dbl/100, b.dbl/100)
		if err != nil {
			return Value{}, err
		}
		if f, ok := v.Float64(); ok {
			return NewPercent(f * 100), nil
		}
		return v, nil
	}
	return op.float(asFloat64(a), asFloat64(b))
}

func ratOrErr(f *big.Rat) (Value, error) { return NewRational(f), nil }

var addOp = scalarOp{
	rat: func(a, b *big.Rat) (Value, error) {
		return ratOrErr(new(big.Rat).Add(a, b))
	},
	float: func(a, b float64) (Value, error) { return NewDouble(a + b), nil },
}

var subOp = scalarOp{
	rat: func(a, b *big.Rat) (Value, error) {
		return ratOrErr(new(big.Rat).Sub(a, b))
	},
	float: func(a, b float64) (Value, error) { return NewDouble(a - b), nil },
}

var mulOp = scalarOp{
	rat: func(a, b *big.Rat) (Value, error) {
		return ratOrErr(new(big.Rat).Mul(a, b))
	},
	float: func(a, b float64) (Value, error) { return NewDouble(a * b), nil },
}

var divOp = scalarOp{
	rat: func(a, b *big.Rat) (Value, error) {
		if b.Sign() == 0 {
			return Value{}, arithmeticErrorf("division by zero")
		}
		return ratOrErr(new(big.Rat).Quo(a, b))
	},
	float: func(a, b float64) (Value, error) { return NewDouble(a / b), nil },
}

// powOp: rationals are not closed under non-integer powers, so power
// always routes through float64 (spec §4.A).
var powOp = scalarOp{
	float: func(a, b float64) (Value, error) { return NewDouble(math.Pow(a, b)), nil },
}

// Add implements the + operator over the full lattice.
func Add(a, b Value) (Value, error) { return broadcast(a, b, addOp) }

// Sub implements the - operator over the full lattice.
func Sub(a, b Value) (Value, error) { return broadcast(a, b, subOp) }

// Mul implements element-wise * (NOT matrix inner product; see MatMul).
func Mul(a, b Value) (Value, error) { return broadcast(a, b, mulOp) }

// Div implements the / operator over the full lattice.
func Div(a, b Value) (Value, error) { return broadcast(a, b, divOp) }

// Pow implements the ^ operator over the full lattice.
func Pow(a, b Value) (Value, error) { return broadcast(a, b, powOp) }

// zero returns the additive-identity scalar used to pad the shorter side
// of a mismatched-size element-wise operation (spec: "containers of
// unequal size normalise by padding the smaller container with zeroes").
// Its kind mirrors the Value it stands in for so the promotion rules
// above still apply uniformly.
func zeroLike(v Value) Value {
	switch v.kind {
	case Double:
		return NewDouble(0)
	case Percent:
		return NewPercent(0)
	case Bool:
		return NewBool(false)
	default:
		return RationalFromInt64(0)
	}
}

// broadcast dispatches a binary scalarOp across the container shapes the
// spec requires: scalar x scalar, scalar x vector (and the reverse),
// vector x vector with zero-padding, and anything x matrix.
func broadcast(a, b Value, op scalarOp) (Value, error) {
	switch {
	case a.kind == Matrix || b.kind == Matrix:
		return broadcastMatrix(a, b, op)
	case a.kind == Vector || b.kind == Vector:
		return broadcastVector(a, b, op)
	default:
		return op.apply(a, b)
	}
}

func broadcastVector(a, b Value, op scalarOp) (Value, error) {
	av, aIsVec := a.VectorElems()
	bv, bIsVec := b.VectorElems()
	if aIsVec && bIsVec {
		n := len(av)
		if len(bv) > n {
			n = len(bv)
		}
		out := make([]Value, n)
		for i := 0; i < n; i++ {
			x := elemOrZero(av, i, b)
			y := elemOrZero(bv, i, a)
			v, err := op.apply(x, y)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return NewVector(out), nil
	}
	if aIsVec {
		out := make([]Value, len(av))
		for i, x := range av {
			v, err := op.apply(x, b)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return NewVector(out), nil
	}
	// b is the vector, a is the scalar.
	out := make([]Value, len(bv))
	for i, y := range bv {
		v, err := op.apply(a, y)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return NewVector(out), nil
}

func elemOrZero(vec []Value, i int, other Value) Value {
	if i < len(vec) {
		return vec[i]
	}
	return zeroLike(other)
}

func broadcastMatrix(a, b Value, op scalarOp) (Value, error) {
	am, aIsMat := a.MatrixValue()
	bm, bIsMat := b.MatrixValue()
	switch {
	case aIsMat && bIsMat:
		rows := am.Rows
		if bm.Rows > rows {
			rows = bm.Rows
		}
		cols := am.Cols
		if bm.Cols > cols {
			cols = bm.Cols
		}
		out := make([]Value, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				x := matCellOrZero(am, r, c, b)
				y := matCellOrZero(bm, r, c, a)
				v, err := op.apply(x, y)
				if err != nil {
					return Value{}, err
				}
				out[r*cols+c] = v
			}
		}
		return NewMatrix(rows, cols, out)
	case aIsMat:
		return mapMatrixWithScalarOrVector(am, b, op, true)
	default:
		return mapMatrixWithScalarOrVector(bm, a, op, false)
	}
}

// mapMatrixWithScalarOrVector applies op element-wise between a matrix
// and a scalar or a vector broadcast per row (spec: "vector broadcast per
// row"). matrixIsLeft controls argument order for non-commutative ops.
func mapMatrixWithScalarOrVector(m *MatrixData, other Value, op scalarOp, matrixIsLeft bool) (Value, error) {
	vecElems, isVec := other.VectorElems()
	out := make([]Value, len(m.Data))
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			cell := m.Data[r*m.Cols+c]
			var peer Value
			if isVec {
				peer = elemOrZero(vecElems, c, cell)
			} else {
				peer = other
			}
			var v Value
			var err error
			if matrixIsLeft {
				v, err = op.apply(cell, peer)
			} else {
				v, err = op.apply(peer, cell)
			}
			if err != nil {
				return Value{}, err
			}
			out[r*m.Cols+c] = v
		}
	}
	return NewMatrix(m.Rows, m.Cols, out)
}

func matCellOrZero(m *MatrixData, r, c int, other Value) Value {
	if r < m.Rows && c < m.Cols {
		return m.Data[r*m.Cols+c]
	}
	return zeroLike(other)
}

// MatMul implements true inner-product matrix multiplication, distinct
// from the element-wise Mul above (spec §4.A: "a *distinct* operator").
func MatMul(a, b Value) (Value, error) {
	am, aOK := a.MatrixValue()
	bm, bOK := b.MatrixValue()
	if !aOK || !bOK {
		return Value{}, typeErrorf("matrix multiplication requires two matrices")
	}
	if am.Cols != bm.Rows {
		return Value{}, shapeErrorf("matrix multiplication shape mismatch: %dx%d * %dx%d", am.Rows, am.Cols, bm.Rows, bm.Cols)
	}
	out := make([]Value, am.Rows*bm.Cols)
	for i := 0; i < am.Rows; i++ {
		for j := 0; j < bm.Cols; j++ {
			sum := RationalFromInt64(0)
			for k := 0; k < am.Cols; k++ {
				term, err := Mul(am.Data[i*am.Cols+k], bm.Data[k*bm.Cols+j])
				if err != nil {
					return Value{}, err
				}
				sum, err = Add(sum, term)
				if err != nil {
					return Value{}, err
				}
			}
			out[i*bm.Cols+j] = sum
		}
	}
	return NewMatrix(am.Rows, bm.Cols, out)
}
