package registry

import "mathex.dev/calcex/value"

// installArith wires the five binary arithmetic operators plus matrix
// inner-product multiplication shared by every preset (spec §4.B: these
// are available even in the binary-only preset).
func installArith(r *Registry) error {
	ops := []*Descriptor{
		{
			Aliases:    []string{"^"},
			Precedence: PrecPower,
			Arity:      Binary,
			Reduce:     binary(value.Pow),
		},
		{
			Aliases:    []string{"*", "×"},
			Precedence: PrecMulDiv,
			Arity:      Binary,
			Reduce:     binary(value.Mul),
		},
		{
			Aliases:    []string{"/"},
			Precedence: PrecMulDiv,
			Arity:      Binary,
			Reduce:     binary(value.Div),
		},
		{
			Aliases:    []string{"+"},
			Precedence: PrecAddSub,
			Arity:      Binary,
			Reduce:     binary(value.Add),
		},
		{
			Aliases:    []string{"-", "−"},
			Precedence: PrecAddSub,
			Arity:      Binary,
			Reduce:     binary(value.Sub),
		},
		{
			// Inner-product matrix multiplication, distinct from
			// element-wise `*` (spec §4.A).
			Aliases:    []string{"matmul"},
			Precedence: PrecMulDiv,
			Arity:      Binary,
			Reduce:     binary(value.MatMul),
		},
	}
	for _, d := range ops {
		if err := r.Install(d); err != nil {
			return err
		}
	}
	return nil
}

// binary adapts a pure value.Value function into a Descriptor.Reduce.
func binary(f func(a, b value.Value) (value.Value, error)) func(EvalContext, []value.Value) (value.Value, error) {
	return func(_ EvalContext, args []value.Value) (value.Value, error) {
		return f(args[0], args[1])
	}
}

// unary adapts a pure value.Value function into a Descriptor.Reduce.
func unary(f func(v value.Value) (value.Value, error)) func(EvalContext, []value.Value) (value.Value, error) {
	return func(_ EvalContext, args []value.Value) (value.Value, error) {
		return f(args[0])
	}
}
