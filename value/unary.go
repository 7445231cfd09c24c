package value

import "math/big"

// Neg negates any numeric Value, recursing element-wise into containers.
// The parser does not call it: a leading unary minus is desugared into
// `0 - x` instead.
func Neg(v Value) (Value, error) {
	return MapScalar(v, func(s Value) (Value, error) {
		switch s.kind {
		case Rational:
			return NewRational(new(big.Rat).Neg(s.rat)), nil
		case Double:
			return NewDouble(-s.dbl), nil
		case Percent:
			return NewPercent(-s.dbl), nil
		case Bool:
			return Neg(asRational(s))
		default:
			return Value{}, typeErrorf("cannot negate %s", s.kind)
		}
	})
}

// MapScalar applies f to every scalar leaf of v, preserving Vector and
// Matrix shape. It is the polymorphic unary interface spec §4.A asks
// for ("apply a scalar-number transform to each element"), and backs
// every unary registry operator (sin, cos, abs, ln, ...).
func MapScalar(v Value, f func(Value) (Value, error)) (Value, error) {
	switch v.kind {
	case Vector:
		out := make([]Value, len(v.vec))
		for i, e := range v.vec {
			r, err := MapScalar(e, f)
			if err != nil {
				return Value{}, err
			}
			out[i] = r
		}
		return NewVector(out), nil
	case Matrix:
		out := make([]Value, len(v.mat.Data))
		for i, e := range v.mat.Data {
			r, err := MapScalar(e, f)
			if err != nil {
				return Value{}, err
			}
			out[i] = r
		}
		return NewMatrix(v.mat.Rows, v.mat.Cols, out)
	case FunctionKind:
		return Value{}, typeErrorf("cannot do arithmetic on functions")
	default:
		return f(v)
	}
}

// Abs implements the `abs` unary operator.
func Abs(v Value) (Value, error) {
	return MapScalar(v, func(s Value) (Value, error) {
		switch s.kind {
		case Rational:
			return NewRational(new(big.Rat).Abs(s.rat)), nil
		case Double:
			return NewDouble(abs64(s.dbl)), nil
		case Percent:
			return NewPercent(abs64(s.dbl)), nil
		case Bool:
			return s, nil
		default:
			return Value{}, typeErrorf("cannot take abs of %s", s.kind)
		}
	})
}

// Factorial implements the `factorial` unary operator. It requires a
// non-negative integral Rational or Bool and returns an exact Rational.
func Factorial(v Value) (Value, error) {
	return MapScalar(v, func(s Value) (Value, error) {
		s = asRational(s)
		if s.kind != Rational || !s.rat.IsInt() {
			return Value{}, typeErrorf("factorial requires a non-negative integer")
		}
		n := s.rat.Num()
		if n.Sign() < 0 {
			return Value{}, typeErrorf("factorial requires a non-negative integer")
		}
		if !n.IsInt64() || n.Int64() > 100000 {
			return Value{}, arithmeticErrorf("factorial argument too large")
		}
		result := big.NewInt(1)
		for i := int64(2); i <= n.Int64(); i++ {
			result.Mul(result, big.NewInt(i))
		}
		return NewRational(new(big.Rat).SetInt(result)), nil
	})
}

// Sum reduces a Vector or Matrix to a single scalar by repeated Add; a
// scalar argument is returned unchanged (the `sum` unary operator).
func Sum(v Value) (Value, error) {
	switch v.kind {
	case Vector:
		acc := RationalFromInt64(0)
		for _, e := range v.vec {
			var err error
			acc, err = Add(acc, e)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil
	case Matrix:
		acc := RationalFromInt64(0)
		for _, e := range v.mat.Data {
			var err error
			acc, err = Add(acc, e)
			if err != nil {
				return Value{}, err
			}
		}
		return acc, nil
	default:
		if !v.IsNumber() {
			return Value{}, typeErrorf("cannot sum a %s", v.kind)
		}
		return v, nil
	}
}

// Sort orders a Vector ascending by Compare, failing with TypeError on
// anything else.
func Sort(v Value) (Value, error) {
	elems, ok := v.VectorElems()
	if !ok {
		return Value{}, typeErrorf("sort requires a vector")
	}
	out := make([]Value, len(elems))
	copy(out, elems)
	var sortErr error
	// Simple insertion sort: vectors in this engine are small
	// (calculator-scale), and it keeps the comparison error path linear
	// instead of fighting sort.Slice's no-error-return callback.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			c, err := Compare(out[j-1], out[j])
			if err != nil {
				sortErr = err
				break
			}
			if c <= 0 {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
		if sortErr != nil {
			return Value{}, sortErr
		}
	}
	return NewVector(out), nil
}
