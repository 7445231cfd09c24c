package registry

import (
	"math"

	"mathex.dev/calcex/value"
)

// installUnaryScalar wires the unary prefix functions available from the
// "simple" preset upward (spec §4.B precedence 4): abs, ln, log, sum,
// sort, factorial, percent, toRational, toDouble, plus sin/cos/tan which
// additionally carry the TrigUnary flag so the evaluator injects the
// context's angle convention before reducing (spec §4.D).
func installUnaryScalar(r *Registry) error {
	ops := []*Descriptor{
		{Aliases: []string{"abs"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unary(value.Abs)},
		{Aliases: []string{"ln"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unaryFloat(math.Log)},
		{Aliases: []string{"log"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unaryFloat(math.Log10)},
		{Aliases: []string{"sum"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unary(value.Sum)},
		{Aliases: []string{"sort"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unary(value.Sort)},
		{Aliases: []string{"factorial"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unary(value.Factorial)},
		{Aliases: []string{"percent"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unaryPercent},
		{Aliases: []string{"toRational"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: unaryErrFn(value.ToRational)},
		{Aliases: []string{"toDouble"}, Precedence: PrecUnaryFunc, Arity: Unary, Reduce: toDoubleValue},

		{Aliases: []string{"sin"}, Precedence: PrecUnaryFunc, Arity: TrigUnary, Reduce: trig(math.Sin)},
		{Aliases: []string{"cos"}, Precedence: PrecUnaryFunc, Arity: TrigUnary, Reduce: trig(math.Cos)},
		{Aliases: []string{"tan"}, Precedence: PrecUnaryFunc, Arity: TrigUnary, Reduce: trig(math.Tan)},

		{Aliases: []string{"percent of"}, Precedence: PrecUnaryFunc, Arity: Binary, Reduce: percentOf},
		{Aliases: []string{"as a % of"}, Precedence: PrecUnaryFunc, Arity: Binary, Reduce: asPercentOf},
	}
	for _, d := range ops {
		if err := r.Install(d); err != nil {
			return err
		}
	}
	return nil
}

func unaryFloat(f func(float64) float64) func(EvalContext, []value.Value) (value.Value, error) {
	return unary(func(v value.Value) (value.Value, error) {
		return value.MapScalar(v, func(s value.Value) (value.Value, error) {
			x, err := value.ToDouble(s)
			if err != nil {
				return value.Value{}, err
			}
			return value.NewDouble(f(x)), nil
		})
	})
}

func unaryErrFn(f func(value.Value) (value.Value, error)) func(EvalContext, []value.Value) (value.Value, error) {
	return unary(f)
}

func unaryPercent(_ EvalContext, args []value.Value) (value.Value, error) {
	return value.MapScalar(args[0], func(s value.Value) (value.Value, error) {
		x, err := value.ToDouble(s)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewPercent(x), nil
	})
}

func toDoubleValue(_ EvalContext, args []value.Value) (value.Value, error) {
	return value.MapScalar(args[0], func(s value.Value) (value.Value, error) {
		f, err := value.ToDouble(s)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewDouble(f), nil
	})
}

// trig wraps a math function with the evaluator's current angle
// convention: Degrees inputs are converted to radians before the call.
func trig(f func(float64) float64) func(EvalContext, []value.Value) (value.Value, error) {
	return func(ctx EvalContext, args []value.Value) (value.Value, error) {
		return value.MapScalar(args[0], func(s value.Value) (value.Value, error) {
			x, err := value.ToDouble(s)
			if err != nil {
				return value.Value{}, err
			}
			if ctx.AngleMode() == Degrees {
				x = x * math.Pi / 180
			}
			return value.NewDouble(f(x)), nil
		})
	}
}

// percentOf implements `a percent of b` = (a/100) * b.
func percentOf(_ EvalContext, args []value.Value) (value.Value, error) {
	a, err := value.ToDouble(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.Mul(value.NewPercent(a), args[1])
}

// asPercentOf implements `a as a % of b` = (a/b) * 100 %.
func asPercentOf(_ EvalContext, args []value.Value) (value.Value, error) {
	a, err := value.ToDouble(args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := value.ToDouble(args[1])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewPercent(a / b * 100), nil
}
