// Package evaluator is the public façade named in spec §6: the surface
// the domain libraries and any front-end (REPL, GUI) actually import,
// wiring together package parse, package eval, and a chosen
// registry.Registry preset behind a handful of session-level verbs.
package evaluator

import (
	"mathex.dev/calcex/convert"
	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/eval"
	"mathex.dev/calcex/parse"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

// Evaluator is one session: an operator registry, a live context, and
// (optionally) one compiled tree cached by Compile for repeated
// EvaluateCached calls.
type Evaluator struct {
	reg    *registry.Registry
	ctx    *eval.Context
	cached tree.Node
}

// NewEvaluator returns a session with the full operator set (spec §6:
// `new_evaluator`).
func NewEvaluator() (*Evaluator, error) {
	return newWithPreset(registry.NewFullRegistry)
}

// NewSimpleEvaluator returns a session with arithmetic plus unary
// scalar operators (spec §6: `new_simple_evaluator`).
func NewSimpleEvaluator() (*Evaluator, error) {
	return newWithPreset(registry.NewSimpleRegistry)
}

// NewBinaryEvaluator returns a session with arithmetic only (spec §6:
// `new_binary_evaluator`).
func NewBinaryEvaluator() (*Evaluator, error) {
	return newWithPreset(registry.NewBinaryRegistry)
}

func newWithPreset(preset func() (*registry.Registry, error)) (*Evaluator, error) {
	reg, err := preset()
	if err != nil {
		return nil, err
	}
	return NewEvaluatorWithRegistry(reg), nil
}

// NewEvaluatorWithRegistry builds a session around an already-assembled
// registry — for a caller (such as cmd/calcex) that picked its preset
// from a config file rather than one of the three named presets.
func NewEvaluatorWithRegistry(reg *registry.Registry) *Evaluator {
	return &Evaluator{reg: reg, ctx: eval.New(reg, convert.NullConverter{})}
}

// SetConverter installs the unit-conversion collaborator used by the
// `in`/`to`/`as` operator family. Sessions start with convert.NullConverter,
// which rejects every conversion.
func (e *Evaluator) SetConverter(c registry.Converter) { e.ctx.SetConverter(c) }

// AddVariable binds name to value at session scope, refusing if name is
// an operator alias (spec §6: `add_variable`).
func (e *Evaluator) AddVariable(name string, v value.Value) error {
	return e.ctx.AssignGlobal(name, v)
}

// SetAngleUnit changes the trig convention for sin/cos/tan (spec §6:
// `set_angle_unit`).
func (e *Evaluator) SetAngleUnit(mode registry.AngleMode) {
	e.ctx.SetAngleMode(mode)
}

// ResetConstants clears all user-defined variables and functions and
// re-seeds the built-in constants (spec §6: `reset_constants`).
func (e *Evaluator) ResetConstants() {
	e.ctx.ClearVars()
}

// EvaluateConstant parses and evaluates source, returning the resulting
// Value (spec §6: `evaluate_constant`).
func (e *Evaluator) EvaluateConstant(source string) (value.Value, error) {
	node, err := parse.Parse(source, e.reg)
	if err != nil {
		return value.Value{}, err
	}
	return eval.Eval(node, e.ctx)
}

// EvaluateDouble evaluates source and converts the result to float64,
// failing with a TypeError if the result isn't numeric (spec §6:
// `evaluate_double`).
func (e *Evaluator) EvaluateDouble(source string) (float64, error) {
	v, err := e.EvaluateConstant(source)
	if err != nil {
		return 0, err
	}
	f, err := value.ToDouble(v)
	if err != nil {
		return 0, errs.Wrap(errs.Type, err, "evaluate_double")
	}
	return f, nil
}

// EvaluateString evaluates source and renders the result the way the
// REPL would display it (spec §6: `evaluate_string`).
func (e *Evaluator) EvaluateString(source string) (string, error) {
	v, err := e.EvaluateConstant(source)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Compile parses source once and caches the tree for repeated
// EvaluateCached calls (spec §6: `compile`).
func (e *Evaluator) Compile(source string) error {
	node, err := parse.Parse(source, e.reg)
	if err != nil {
		return err
	}
	e.cached = node
	return nil
}

// EvaluateCached evaluates the tree installed by the most recent
// Compile call (spec §6: `evaluate_cached`). It fails with a SyntaxError
// if Compile was never called.
func (e *Evaluator) EvaluateCached() (value.Value, error) {
	if e.cached == nil {
		return value.Value{}, errs.New(errs.Syntax, "evaluate_cached called before compile")
	}
	return eval.Eval(e.cached, e.ctx)
}

// EvaluateConcurrent is the reserved-but-unimplemented entry point spec
// §5 describes: "a concurrent evaluation entry point exists in the API
// surface but is explicitly unimplemented in the core specification."
// It always fails; a future concurrent evaluator would replace this
// body without changing the signature callers depend on.
func (e *Evaluator) EvaluateConcurrent(sources []string) ([]value.Value, error) {
	return nil, errs.New(errs.Syntax, "EvaluateConcurrent is reserved and not implemented")
}

// Ans returns the value of the most recently evaluated expression.
func (e *Evaluator) Ans() value.Value { return e.ctx.Ans() }

// Context exposes the live eval.Context for collaborators outside this
// package that need it directly — package session's Save/Load being
// the one case, since persisting a workspace means walking the
// Context's variable and function bindings, not going through
// Evaluator's narrower per-expression surface.
func (e *Evaluator) Context() *eval.Context { return e.ctx }
