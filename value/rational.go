package value

import "math/big"

// Rational window bounds used by FromFloat64 to decide whether a double
// can be represented as an exact, well-behaved rational (see spec §4.A
// "Rational representation"). Past these bounds construction falls back
// to Double rather than risk a pathologically large denominator.
//
// maxRationalMagnitude and maxRationalDenominatorDigits are package
// vars rather than consts so SetRationalWindow (typically called once,
// from a loaded ~/.calcexrc.yaml) can narrow or widen them, the same
// way ivy's main package injects a *config.Config into package value
// via value.SetConfig before parsing anything.
const (
	maxContinuedFractionIterations = 32
	continuedFractionEpsilon       = 1e-12
)

var (
	maxRationalMagnitude         = 1e15
	maxRationalDenominatorDigits = 15
)

// SetRationalWindow overrides the bounds FromFloat64/ToRational use to
// decide whether a double is "nice" enough for exact rational treatment.
// Zero or negative arguments leave the corresponding bound unchanged.
func SetRationalWindow(maxMagnitude float64, maxDenominatorDigits int) {
	if maxMagnitude > 0 {
		maxRationalMagnitude = maxMagnitude
	}
	if maxDenominatorDigits > 0 {
		maxRationalDenominatorDigits = maxDenominatorDigits
	}
}

// FromFloat64 builds a Value from a float64, preferring an exact
// Rational via bounded continued-fraction approximation and falling back
// to Double when the magnitude or precision exceeds the rational window.
func FromFloat64(f float64) Value {
	if f != f || f > maxRationalMagnitude || f < -maxRationalMagnitude {
		// NaN, or too large to bother: stay Double.
		return NewDouble(f)
	}
	r, ok := continuedFractionApproximate(f)
	if !ok {
		return NewDouble(f)
	}
	return NewRational(r)
}

// continuedFractionApproximate finds a *big.Rat within
// continuedFractionEpsilon of f using the standard continued-fraction
// algorithm, bailing out (ok=false) if it needs more than
// maxContinuedFractionIterations terms or lands on a denominator with
// more digits than maxRationalDenominatorDigits — both signs that f
// isn't "nice" enough to deserve exact rational treatment.
func continuedFractionApproximate(f float64) (*big.Rat, bool) {
	sign := int64(1)
	if f < 0 {
		sign = -1
		f = -f
	}

	// h/k are successive continued-fraction convergents.
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)
	x := f

	for i := 0; i < maxContinuedFractionIterations; i++ {
		a := int64(x)
		h2 := a*h1 + h0
		k2 := a*k1 + k0
		h0, h1 = h1, h2
		k0, k1 = k1, k2

		if k1 == 0 {
			return nil, false
		}
		approx := float64(h1) / float64(k1)
		if abs64(approx-f) <= continuedFractionEpsilon*maxFloat(1, f) {
			r := big.NewRat(sign*h1, k1)
			if digitCount(k1) > maxRationalDenominatorDigits {
				return nil, false
			}
			return r, true
		}

		frac := x - float64(a)
		if frac == 0 {
			break
		}
		x = 1 / frac
	}
	return nil, false
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func digitCount(n int64) int {
	if n < 0 {
		n = -n
	}
	count := 1
	for n >= 10 {
		n /= 10
		count++
	}
	return count
}

// ToDouble reduces any scalar Value to its plain float64 numeric value,
// and errors with TypeError on Vector/Matrix/Function.
func ToDouble(v Value) (float64, error) {
	if !v.IsNumber() {
		return 0, typeErrorf("cannot convert %s to a number", v.kind)
	}
	return asFloat64(v), nil
}

// ToRational converts a scalar Value to an exact Rational, using the
// same windowed continued-fraction approximation as FromFloat64 when v
// isn't already exact. Fails with ArithmeticError if the value falls
// outside the rational window (mirrors the round-trip law in spec §8:
// toRational(toDouble(r)) == r for any r that fits the window).
func ToRational(v Value) (Value, error) {
	switch v.kind {
	case Rational:
		return v, nil
	case Bool:
		return asRational(v), nil
	case Percent, Double:
		f := asFloat64(v)
		if f != f || f > maxRationalMagnitude || f < -maxRationalMagnitude {
			return Value{}, arithmeticErrorf("%v is outside the rational window", f)
		}
		r, ok := continuedFractionApproximate(f)
		if !ok {
			return Value{}, arithmeticErrorf("%v is outside the rational window", f)
		}
		return NewRational(r), nil
	default:
		return Value{}, typeErrorf("cannot convert %s to a rational", v.kind)
	}
}
