package registry

import "mathex.dev/calcex/value"

// installLogical wires the relational, equality, and logical operator
// families (spec §4.B precedences 5-7).
func installLogical(r *Registry) error {
	ops := []*Descriptor{
		{Aliases: []string{"<"}, Precedence: PrecRelational, Arity: Binary, Reduce: relational(func(c int) bool { return c < 0 })},
		{Aliases: []string{"<="}, Precedence: PrecRelational, Arity: Binary, Reduce: relational(func(c int) bool { return c <= 0 })},
		{Aliases: []string{">"}, Precedence: PrecRelational, Arity: Binary, Reduce: relational(func(c int) bool { return c > 0 })},
		{Aliases: []string{">="}, Precedence: PrecRelational, Arity: Binary, Reduce: relational(func(c int) bool { return c >= 0 })},

		{Aliases: []string{"=="}, Precedence: PrecEquality, Arity: Binary, Reduce: equality(true)},
		{Aliases: []string{"!="}, Precedence: PrecEquality, Arity: Binary, Reduce: equality(false)},

		{Aliases: []string{"and"}, Precedence: PrecLogical, Arity: Binary, Reduce: logical(func(a, b bool) bool { return a && b })},
		{Aliases: []string{"or"}, Precedence: PrecLogical, Arity: Binary, Reduce: logical(func(a, b bool) bool { return a || b })},
		{Aliases: []string{"xor"}, Precedence: PrecLogical, Arity: Binary, Reduce: logical(func(a, b bool) bool { return a != b })},
	}
	for _, d := range ops {
		if err := r.Install(d); err != nil {
			return err
		}
	}
	return nil
}

func relational(accept func(cmp int) bool) func(EvalContext, []value.Value) (value.Value, error) {
	return func(_ EvalContext, args []value.Value) (value.Value, error) {
		cmp, err := value.Compare(args[0], args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(accept(cmp)), nil
	}
}

func equality(wantEqual bool) func(EvalContext, []value.Value) (value.Value, error) {
	return func(_ EvalContext, args []value.Value) (value.Value, error) {
		eq, err := value.Equal(args[0], args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(eq == wantEqual), nil
	}
}

func logical(f func(a, b bool) bool) func(EvalContext, []value.Value) (value.Value, error) {
	return func(_ EvalContext, args []value.Value) (value.Value, error) {
		a, err := asBool(args[0])
		if err != nil {
			return value.Value{}, err
		}
		b, err := asBool(args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.NewBool(f(a, b)), nil
	}
}

func asBool(v value.Value) (bool, error) {
	if b, ok := v.BoolValue(); ok {
		return b, nil
	}
	f, err := value.ToDouble(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}
