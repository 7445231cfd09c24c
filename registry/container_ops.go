package registry

import "mathex.dev/calcex/value"

// installContainer wires the two container operators named in spec §6:
// `where` filters a vector by a boolean predicate and `select` maps a
// transform over it. The predicate/transform operand may itself be a
// vector (mask or index-gather, handled by Reduce below) or a function
// (spec §8 scenario 4), which package eval applies element-wise — hence
// Container arity rather than plain Binary.
func installContainer(r *Registry) error {
	ops := []*Descriptor{
		{Aliases: []string{"where"}, Precedence: PrecUnaryFunc, Arity: Container, Reduce: whereOp},
		{Aliases: []string{"select"}, Precedence: PrecUnaryFunc, Arity: Container, Reduce: selectOp},
	}
	for _, d := range ops {
		if err := r.Install(d); err != nil {
			return err
		}
	}
	return nil
}

// whereOp implements `data where mask` for the vector/vector form: mask
// must be a vector of the same length as data, and the result keeps the
// elements of data whose corresponding mask entry is truthy. The
// function-operand form (`data where predicateFn`) is handled by
// package eval before Reduce is ever called.
func whereOp(_ EvalContext, args []value.Value) (value.Value, error) {
	data, ok := args[0].VectorElems()
	if !ok {
		return value.Value{}, value.TypeErrorf("where: left operand must be a vector, got %s", args[0].Kind())
	}
	mask, ok := args[1].VectorElems()
	if !ok {
		return value.Value{}, value.TypeErrorf("where: right operand must be a vector, got %s", args[1].Kind())
	}
	if len(mask) != len(data) {
		return value.Value{}, value.ShapeErrorf("where: mask has %d entries, data has %d", len(mask), len(data))
	}
	out := make([]value.Value, 0, len(data))
	for i, elem := range data {
		keep, err := asBool(mask[i])
		if err != nil {
			return value.Value{}, err
		}
		if keep {
			out = append(out, elem)
		}
	}
	return value.NewVector(out), nil
}

// selectOp implements `data select indices` for the vector/vector form:
// indices is a vector of integral Rational values naming positions into
// data. The function-operand form (`data select transformFn`) is
// handled by package eval before Reduce is ever called.
func selectOp(_ EvalContext, args []value.Value) (value.Value, error) {
	data, ok := args[0].VectorElems()
	if !ok {
		return value.Value{}, value.TypeErrorf("select: left operand must be a vector, got %s", args[0].Kind())
	}
	indices, ok := args[1].VectorElems()
	if !ok {
		return value.Value{}, value.TypeErrorf("select: right operand must be a vector, got %s", args[1].Kind())
	}
	out := make([]value.Value, 0, len(indices))
	for _, idxVal := range indices {
		i, err := asIndex(idxVal, len(data))
		if err != nil {
			return value.Value{}, err
		}
		out = append(out, data[i])
	}
	return value.NewVector(out), nil
}

func asIndex(v value.Value, length int) (int, error) {
	f, err := value.ToDouble(v)
	if err != nil {
		return 0, err
	}
	i := int(f)
	if float64(i) != f || i < 0 || i >= length {
		return 0, value.ArithmeticErrorf("select: index %v out of range for length %d", v, length)
	}
	return i, nil
}
