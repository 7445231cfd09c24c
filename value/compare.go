package value

// Compare orders two scalar Values, promoting per the same rank used by
// arithmetic. It fails with TypeError on containers or functions; the
// registry's relational operators pass their operands straight to
// Compare (see registry/logical_ops.go), so they fail on vectors too.
func Compare(a, b Value) (int, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return 0, typeErrorf("cannot compare %s and %s", a.kind, b.kind)
	}
	if scalarRank(a.kind) == 0 && scalarRank(b.kind) == 0 {
		ra, rb := asRat(a), asRat(b)
		return ra.Cmp(rb), nil
	}
	fa, fb := asFloat64(a), asFloat64(b)
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports deep structural equality, recursing into vectors and
// matrices element-wise and comparing functions by identity of their
// compiled source.
func Equal(a, b Value) (bool, error) {
	if a.kind != b.kind {
		if a.IsNumber() && b.IsNumber() {
			c, err := Compare(a, b)
			return err == nil && c == 0, err
		}
		return false, nil
	}
	switch a.kind {
	case Vector:
		if len(a.vec) != len(b.vec) {
			return false, nil
		}
		for i := range a.vec {
			eq, err := Equal(a.vec[i], b.vec[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case Matrix:
		if a.mat.Rows != b.mat.Rows || a.mat.Cols != b.mat.Cols {
			return false, nil
		}
		for i := range a.mat.Data {
			eq, err := Equal(a.mat.Data[i], b.mat.Data[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case FunctionKind:
		return a.fn.Name == b.fn.Name && a.fn.Source == b.fn.Source, nil
	default:
		c, err := Compare(a, b)
		return err == nil && c == 0, err
	}
}

// Sign reports the sign (-1, 0 or +1) of a Rational without exposing
// *big.Rat, and whether v is a Rational at all.
func Sign(v Value) (int, bool) {
	if v.kind != Rational {
		return 0, false
	}
	return v.rat.Sign(), true
}
