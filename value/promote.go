package value

import "math/big"

// scalarRank gives the total order Rational < Percent < Double used to
// pick a promotion target when two scalars of different kinds meet
// (spec invariant 6). Bool behaves as a Rational (0 or 1) for ranking
// purposes; it is never itself a promotion target.
func scalarRank(k Kind) int {
	switch k {
	case Rational, Bool:
		return 0
	case Percent:
		return 1
	case Double:
		return 2
	default:
		return -1
	}
}

// asRational reduces a Bool to its Rational numeric value; every other
// scalar kind passes through unchanged. Used before any Rational-path
// arithmetic.
func asRational(v Value) Value {
	if v.kind == Bool {
		if v.b {
			return RationalFromInt64(1)
		}
		return RationalFromInt64(0)
	}
	return v
}

// asFloat64 reduces any scalar Value to its plain numeric float64,
// dividing a Percent by 100 per spec §3 ("Percent ... participates in
// number arithmetic after division by 100").
func asFloat64(v Value) float64 {
	switch v.kind {
	case Rational:
		f, _ := v.rat.Float64()
		return f
	case Double:
		return v.dbl
	case Percent:
		return v.dbl / 100
	case Bool:
		if v.b {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// asRat reduces a Rational-or-Bool scalar to a *big.Rat. Callers must
// only invoke this once scalarRank has confirmed both operands rank 0.
func asRat(v Value) *big.Rat {
	v = asRational(v)
	return v.rat
}
