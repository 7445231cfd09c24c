// Package eval implements the tree evaluator (spec component D): given a
// tree.Node and a live Context, it produces a value.Value or fails with
// one of the six error kinds in package errs. It is the generalization
// of the teacher's exec.Context — ivy's Context carries a *config.Config,
// a variable/operator stack, and its own EvalUnary/EvalBinary dispatch;
// here dispatch is delegated entirely to the registry.Registry the
// Context is built with, so adding an operator never touches this file.
package eval

import (
	"math"

	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/value"
)

// frame is one level of local variable bindings, pushed for the
// duration of a user-defined function application and popped via defer
// on every exit path (spec invariant: "parameters are restored on every
// exit, including error exits"), mirroring exec.Context.push/pop but
// using Go's defer instead of a manual push/pop pair at each call site.
type frame struct {
	vars map[string]value.Value
}

// Context is the one implementation of registry.EvalContext. Unlike
// ivy's Context, which holds one flat Globals map plus a *Function
// stack shared across unary and binary arities, Context here separates
// variables (Globals) from user-defined functions (Functions), since
// value.FunctionKind makes a function just another value a name can be
// bound to.
type Context struct {
	reg   *registry.Registry
	angle registry.AngleMode
	conv  registry.Converter

	globals   map[string]value.Value
	functions map[string]value.Value
	stack     []*frame

	ans    value.Value
	ansSet bool
}

// New builds a Context around a registry and conversion collaborator,
// seeded with the fundamental constants (spec §3), mirroring
// exec.NewContext's call to SetConstants.
func New(reg *registry.Registry, conv registry.Converter) *Context {
	c := &Context{
		reg:       reg,
		conv:      conv,
		globals:   make(map[string]value.Value),
		functions: make(map[string]value.Value),
	}
	c.setConstants()
	return c
}

// reservedConstants names every identifier setConstants seeds, so
// Variables can exclude them from a saved session the same way ivy's
// Save skips built-ins it never wrote to Globals in the first place.
var reservedConstants = map[string]struct{}{
	"pi": {}, "euler": {}, "infinity": {}, "nan": {}, "true": {}, "false": {},
}

// setConstants (re-)seeds the reserved identifiers spec §6 names:
// pi, euler, infinity, nan, true, false. ans is excluded here — it's
// only ever set by Eval after a successful top-level evaluation, never
// by a reset, since its whole purpose is to remember the last result.
func (c *Context) setConstants() {
	c.globals["pi"] = value.NewDouble(math.Pi)
	c.globals["euler"] = value.NewDouble(math.E)
	c.globals["infinity"] = value.NewDouble(math.Inf(1))
	c.globals["nan"] = value.NewDouble(math.NaN())
	c.globals["true"] = value.NewBool(true)
	c.globals["false"] = value.NewBool(false)
}

// AngleMode implements registry.EvalContext.
func (c *Context) AngleMode() registry.AngleMode { return c.angle }

// SetAngleMode changes the trig convention used by sin/cos/tan.
func (c *Context) SetAngleMode(m registry.AngleMode) { c.angle = m }

// Converter implements registry.EvalContext.
func (c *Context) Converter() registry.Converter { return c.conv }

// SetConverter swaps in a new unit-conversion collaborator.
func (c *Context) SetConverter(conv registry.Converter) { c.conv = conv }

// Lookup implements registry.EvalContext: it resolves a name against the
// innermost local frame first, then globals, matching exec.Context's
// locals-shadow-globals rule (IsLocal/Local checked before Globals).
func (c *Context) Lookup(name string) (value.Value, bool) {
	if len(c.stack) > 0 {
		if v, ok := c.stack[len(c.stack)-1].vars[name]; ok {
			return v, true
		}
	}
	if name == "ans" {
		return c.ans, c.ansSet
	}
	if v, ok := c.functions[name]; ok {
		return v, true
	}
	v, ok := c.globals[name]
	return v, ok
}

// Registry exposes the operator catalogue so package eval's own
// evaluator can resolve Application nodes.
func (c *Context) Registry() *registry.Registry { return c.reg }

// Ans returns the value of the most recently evaluated top-level
// expression (spec §3's implicit `ans` binding), or the zero Value if
// nothing has been evaluated yet.
func (c *Context) Ans() value.Value { return c.ans }

func (c *Context) setAns(v value.Value) {
	c.ans = v
	c.ansSet = true
}

// AssignGlobal binds name to v at global scope, refusing to shadow an
// installed operator alias (spec invariant 3: NameCollision).
func (c *Context) AssignGlobal(name string, v value.Value) error {
	if c.reg.IsAlias(name) {
		return errs.New(errs.Collision, "%q is an operator name and cannot be used as a variable", name)
	}
	c.globals[name] = v
	return nil
}

// DefineFunction binds a FunctionKind value to name, refusing to shadow
// an operator alias the same way AssignGlobal does.
func (c *Context) DefineFunction(name string, fn value.Value) error {
	if c.reg.IsAlias(name) {
		return errs.New(errs.Collision, "%q is an operator name and cannot be used as a function name", name)
	}
	c.functions[name] = fn
	return nil
}

// Function looks up a user-defined function by name.
func (c *Context) Function(name string) (*value.Function, bool) {
	v, ok := c.functions[name]
	if !ok {
		return nil, false
	}
	return v.FunctionValue()
}

// Variables returns a snapshot of every global variable binding,
// excluding the reserved constants (spec §6) and `ans`. Used by package
// session to serialize a workspace, mirroring exec.Context.Globals
// being walked by ivy's own Save.
func (c *Context) Variables() map[string]value.Value {
	out := make(map[string]value.Value, len(c.globals))
	for name, v := range c.globals {
		if _, reserved := reservedConstants[name]; reserved {
			continue
		}
		out[name] = v
	}
	return out
}

// Functions returns a snapshot of every user-defined function binding.
func (c *Context) Functions() map[string]value.Value {
	out := make(map[string]value.Value, len(c.functions))
	for name, v := range c.functions {
		out[name] = v
	}
	return out
}

// ClearVars resets every variable and user-defined function, then
// re-seeds the constants — the `clearvars` reserved word's effect (spec
// §4.D), generalizing exec.Context.UndefineAll(true, true, true).
func (c *Context) ClearVars() {
	c.globals = make(map[string]value.Value)
	c.functions = make(map[string]value.Value)
	c.setConstants()
}

// pushFrame installs a new local scope for a function application.
func (c *Context) pushFrame(vars map[string]value.Value) {
	c.stack = append(c.stack, &frame{vars: vars})
}

// popFrame removes the innermost local scope. Always called via defer
// from applyFunctionValues so abnormal returns (errors) still restore scope.
func (c *Context) popFrame() {
	c.stack = c.stack[:len(c.stack)-1]
}
