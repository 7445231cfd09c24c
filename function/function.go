// Package function implements the Function façade (spec component E): a
// thin, cache-on-first-parse wrapper over package parse and package eval
// aimed at the domain libraries (differentiation, integration, root
// finding) rather than at interactive use. It plays the role ivy's
// exec.Function plays for its own interpreter loop, but exposes a
// narrower, read-only surface: "evaluate this equation at a point".
package function

import (
	"mathex.dev/calcex/convert"
	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/eval"
	"mathex.dev/calcex/parse"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

// Function is an equation in one declared variable, parsed once and
// evaluated repeatedly at different points. It is immutable after
// construction: New does the parse eagerly (the spec's "lazily
// parses... and caches" is satisfied trivially here since there's
// nothing else for a freshly constructed Function to do before its
// first evaluation).
type Function struct {
	equation string
	variable string
	angle    registry.AngleMode
	reg      *registry.Registry
	tree     tree.Node
}

// New parses equation and returns a Function bound to variable
// (default "x" is the caller's responsibility to supply) evaluated
// under angle for its trig operators. Parsing happens against the
// full operator preset, since a domain library's equation may use any
// of sin/cos/ln/etc.
func New(equation, variable string, angle registry.AngleMode) (*Function, error) {
	reg, err := registry.NewFullRegistry()
	if err != nil {
		return nil, err
	}
	node, err := parse.Parse(equation, reg)
	if err != nil {
		return nil, err
	}
	return &Function{equation: equation, variable: variable, angle: angle, reg: reg, tree: node}, nil
}

// Variable returns the declared independent variable's name.
func (f *Function) Variable() string { return f.variable }

// CompiledExpression returns the cached, immutable parse tree. It's an
// opaque handle to callers outside this module — nothing about
// tree.Node is meant to be pattern-matched by domain libraries.
func (f *Function) CompiledExpression() tree.Node { return f.tree }

// EvaluateAt binds the declared variable to x in a scratch context
// seeded with the default constants and evaluates the cached tree.
func (f *Function) EvaluateAt(x float64) (float64, error) {
	ctx := f.newScratchContext()
	if err := ctx.AssignGlobal(f.variable, value.NewDouble(x)); err != nil {
		return 0, err
	}
	return f.evaluateTreeAsDouble(ctx)
}

// EvaluateAtExpr parses expr as an expression in the same registry and
// evaluates it to a Double, then binds that as the variable's value and
// evaluates the cached tree — e.g. for a domain library composing one
// Function's output into another's input symbolically before handing
// over a concrete number.
func (f *Function) EvaluateAtExpr(expr string) (float64, error) {
	ctx := f.newScratchContext()
	node, err := parse.Parse(expr, f.reg)
	if err != nil {
		return 0, err
	}
	argVal, err := eval.Eval(node, ctx)
	if err != nil {
		return 0, err
	}
	x, err := value.ToDouble(argVal)
	if err != nil {
		return 0, errs.Wrap(errs.Type, err, "function argument")
	}
	if err := ctx.AssignGlobal(f.variable, value.NewDouble(x)); err != nil {
		return 0, err
	}
	return f.evaluateTreeAsDouble(ctx)
}

func (f *Function) newScratchContext() *eval.Context {
	ctx := eval.New(f.reg, convert.NullConverter{})
	ctx.SetAngleMode(f.angle)
	return ctx
}

func (f *Function) evaluateTreeAsDouble(ctx *eval.Context) (float64, error) {
	result, err := eval.Eval(f.tree, ctx)
	if err != nil {
		return 0, err
	}
	x, err := value.ToDouble(result)
	if err != nil {
		return 0, errs.Wrap(errs.Type, err, "function result")
	}
	return x, nil
}
