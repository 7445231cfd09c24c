package eval

import (
	"errors"

	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

// Eval reduces a single tree.Node against ctx, the direct analogue of
// exec.Context.Eval/EvalUnary/EvalBinary collapsed into one recursive
// function since there's no separate unary/binary dispatch table to
// consult here — Descriptor.Arity already says how many operands an
// Application needs.
func Eval(node tree.Node, ctx *Context) (value.Value, error) {
	v, err := eval(node, ctx)
	if err != nil {
		return value.Value{}, err
	}
	ctx.setAns(v)
	return v, nil
}

func eval(node tree.Node, ctx *Context) (value.Value, error) {
	switch n := node.(type) {
	case tree.Literal:
		return n.Value, nil

	case tree.Name:
		v, ok := ctx.Lookup(n.Identifier)
		if !ok {
			return value.Value{}, errs.New(errs.Name, "undefined name %q", n.Identifier)
		}
		return v, nil

	case tree.VectorLiteral:
		return evalVector(n, ctx)

	case tree.MatrixLiteral:
		return evalMatrix(n, ctx)

	case tree.Assign:
		return evalAssign(n, ctx)

	case tree.FunctionDefinition:
		return evalFunctionDefinition(n, ctx)

	case tree.ClearVars:
		ctx.ClearVars()
		return value.RationalFromInt64(0), nil

	case tree.Application:
		return evalApplication(n, ctx)

	default:
		return value.Value{}, errs.New(errs.Syntax, "unrecognized expression node %T", node)
	}
}

func evalVector(n tree.VectorLiteral, ctx *Context) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := eval(e, ctx)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.NewVector(elems), nil
}

func evalMatrix(n tree.MatrixLiteral, ctx *Context) (value.Value, error) {
	rows := make([][]value.Value, len(n.Rows))
	for i, row := range n.Rows {
		r := make([]value.Value, len(row))
		for j, e := range row {
			v, err := eval(e, ctx)
			if err != nil {
				return value.Value{}, err
			}
			r[j] = v
		}
		rows[i] = r
	}
	m, err := value.NewMatrixFromRows(rows)
	if err != nil {
		return value.Value{}, wrapLatticeError(err)
	}
	return m, nil
}

func evalAssign(n tree.Assign, ctx *Context) (value.Value, error) {
	v, err := eval(n.Value, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if len(ctx.stack) > 0 {
		// Inside a function body, `name := expr` binds a local, not a
		// global (spec §4.D: assignment inside a function body is
		// scoped to that call's frame).
		ctx.stack[len(ctx.stack)-1].vars[n.Identifier] = v
		return v, nil
	}
	if err := ctx.AssignGlobal(n.Identifier, v); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

func evalFunctionDefinition(n tree.FunctionDefinition, ctx *Context) (value.Value, error) {
	bf := newBoundFunction(ctx, n.Body)
	fn := value.NewFunction(n.Identifier, n.Params, n.Source, bf)
	if err := ctx.DefineFunction(n.Identifier, fn); err != nil {
		return value.Value{}, err
	}
	return fn, nil
}

func evalApplication(n tree.Application, ctx *Context) (value.Value, error) {
	if d, ok := ctx.Registry().Find(n.Operator); ok {
		return evalOperator(d, n, ctx)
	}
	if fn, ok := ctx.Function(n.Operator); ok {
		return applyFunction(fn, n.Args, ctx)
	}
	return value.Value{}, errs.New(errs.Name, "undefined operator or function %q", n.Operator)
}

func evalOperator(d *registry.Descriptor, n tree.Application, ctx *Context) (value.Value, error) {
	if d.Arity == registry.Conversion {
		return evalConversion(d, n, ctx)
	}
	if d.Arity == registry.Container {
		return evalContainer(d, n, ctx)
	}

	want := 2
	if d.Arity == registry.Unary || d.Arity == registry.TrigUnary {
		want = 1
	}
	if len(n.Args) != want {
		return value.Value{}, errs.New(errs.Syntax, "wrong number of arguments to operator %s: got %d, want %d", n.Operator, len(n.Args), want)
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := eval(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	v, err := d.Reduce(ctx, args)
	if err != nil {
		return value.Value{}, wrapLatticeError(err)
	}
	return v, nil
}

// evalConversion handles the `in`/`to`/`as` family: the quantity is
// evaluated normally but the destination unit is a raw identifier, not
// an expression to resolve through Lookup. The source unit is left
// empty (SPEC_FULL §9.3: conversion's source-unit tracking is an
// out-of-scope concern per §1 — the Converter collaborator decides how
// to interpret an empty "from", typically the quantity's native base
// unit), which is what keeps this an explicit two-operand operator
// rather than ivy-style bare juxtaposition like `12mph`.
func evalConversion(d *registry.Descriptor, n tree.Application, ctx *Context) (value.Value, error) {
	if len(n.Args) != 2 {
		return value.Value{}, errs.New(errs.Syntax, "wrong number of arguments to operator %s: got %d, want 2 (quantity, destination-unit)", n.Operator, len(n.Args))
	}
	quantity, err := eval(n.Args[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	toUnit, ok := n.Args[1].(tree.Name)
	if !ok {
		return value.Value{}, errs.New(errs.Syntax, "operator %s expects a unit name, not an expression, as its second argument", n.Operator)
	}
	v, err := registry.ApplyConversion(ctx, quantity, "", toUnit.Identifier)
	if err != nil {
		return value.Value{}, errs.Wrap(errs.Type, err, "unit conversion")
	}
	return v, nil
}

// applyFunction evaluates the arguments, then binds and calls fn via
// applyFunctionValues (spec invariant: parameters are scoped to the call
// and never leak).
func applyFunction(fn *value.Function, argNodes []tree.Node, ctx *Context) (value.Value, error) {
	if len(argNodes) != len(fn.Params) {
		return value.Value{}, errs.New(errs.Syntax, "wrong number of arguments to function %s: got %d, want %d", fn.Name, len(argNodes), len(fn.Params))
	}
	args := make([]value.Value, len(argNodes))
	for i, a := range argNodes {
		v, err := eval(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return applyFunctionValues(fn, args)
}

// applyFunctionValues binds already-evaluated args to fn's declared
// parameter names in a fresh local frame, evaluates the body, and
// restores the previous frame on every exit path — the defer here is
// what replaces exec.Context's manual push(fn)/pop() pair. It is the
// entry point for both ordinary calls (applyFunction, which must first
// evaluate AST argument nodes) and container operators applying a
// function to already-materialized vector elements (evalContainer).
func applyFunctionValues(fn *value.Function, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Value{}, errs.New(errs.Syntax, "wrong number of arguments to function %s: got %d, want %d", fn.Name, len(args), len(fn.Params))
	}
	bf, ok := runtimeOf(fn)
	if !ok {
		return value.Value{}, errs.New(errs.Name, "function %q has no compiled body", fn.Name)
	}
	owner, ok := bf.resolve()
	if !ok {
		return value.Value{}, errs.New(errs.Name, "function %q's defining context is no longer available", fn.Name)
	}

	locals := make(map[string]value.Value, len(fn.Params))
	for i, p := range fn.Params {
		locals[p] = args[i]
	}

	owner.pushFrame(locals)
	defer owner.popFrame()

	return eval(bf.body, owner)
}

// evalContainer handles `where`/`select`. The left operand is always a
// vector; the right operand is evaluated normally and then dispatched
// on its kind: a function value is applied element-wise (spec §8
// scenario 4, e.g. `v where f`), anything else (a boolean mask for
// `where`, an index vector for `select`) falls through to the
// descriptor's ordinary Reduce.
func evalContainer(d *registry.Descriptor, n tree.Application, ctx *Context) (value.Value, error) {
	if len(n.Args) != 2 {
		return value.Value{}, errs.New(errs.Syntax, "wrong number of arguments to operator %s: got %d, want 2", n.Operator, len(n.Args))
	}
	left, err := eval(n.Args[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	right, err := eval(n.Args[1], ctx)
	if err != nil {
		return value.Value{}, err
	}

	if fn, ok := right.FunctionValue(); ok {
		v, err := applyContainerFunction(n.Operator, left, fn)
		if err != nil {
			return value.Value{}, wrapLatticeError(err)
		}
		return v, nil
	}

	v, err := d.Reduce(ctx, []value.Value{left, right})
	if err != nil {
		return value.Value{}, wrapLatticeError(err)
	}
	return v, nil
}

// applyContainerFunction implements `where`/`select` when the right
// operand is a function rather than a vector: `where` keeps the
// elements of data for which fn returns truthy, `select` replaces each
// element of data with fn applied to it.
func applyContainerFunction(operator string, data value.Value, fn *value.Function) (value.Value, error) {
	elems, ok := data.VectorElems()
	if !ok {
		return value.Value{}, errs.New(errs.Type, "%s: left operand must be a vector, got %s", operator, data.Kind())
	}
	if len(fn.Params) != 1 {
		return value.Value{}, errs.New(errs.Syntax, "%s: function %s must take exactly one parameter, got %d", operator, fn.Name, len(fn.Params))
	}

	switch operator {
	case "where":
		out := make([]value.Value, 0, len(elems))
		for _, elem := range elems {
			result, err := applyFunctionValues(fn, []value.Value{elem})
			if err != nil {
				return value.Value{}, err
			}
			keep, err := truthy(result)
			if err != nil {
				return value.Value{}, errs.Wrap(errs.Type, err, "where predicate")
			}
			if keep {
				out = append(out, elem)
			}
		}
		return value.NewVector(out), nil
	case "select":
		out := make([]value.Value, len(elems))
		for i, elem := range elems {
			result, err := applyFunctionValues(fn, []value.Value{elem})
			if err != nil {
				return value.Value{}, err
			}
			out[i] = result
		}
		return value.NewVector(out), nil
	default:
		return value.Value{}, errs.New(errs.Syntax, "%s: function operand is not supported by this operator", operator)
	}
}

// truthy mirrors package registry's own boolean coercion (a Bool value
// is truthy per its tag, anything else per value.ToDouble != 0) so a
// predicate function's return value is interpreted the same way the
// `and`/`or`/`xor` operators interpret their operands.
func truthy(v value.Value) (bool, error) {
	if b, ok := v.BoolValue(); ok {
		return b, nil
	}
	f, err := value.ToDouble(v)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

// wrapLatticeError converts the lightweight error types package value
// raises (ShapeError, TypeError, ArithmeticError) into the engine's
// errs.Error, matching them to their errs.Kind; anything else passes
// through unchanged (it's already an *errs.Error, e.g. from a nested
// Eval call).
func wrapLatticeError(err error) error {
	var shapeErr value.ShapeError
	if errors.As(err, &shapeErr) {
		return errs.Wrap(errs.Shape, err, "shape mismatch")
	}
	var typeErr value.TypeError
	if errors.As(err, &typeErr) {
		return errs.Wrap(errs.Type, err, "type mismatch")
	}
	var arithErr value.ArithmeticError
	if errors.As(err, &arithErr) {
		return errs.Wrap(errs.Arithmetic, err, "arithmetic error")
	}
	return err
}
