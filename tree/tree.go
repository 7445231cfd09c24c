// Package tree defines the immutable expression tree that package parse
// builds and package eval reduces. Node variants are plain data: unlike
// the teacher's value.Expr (which carries its own Eval(Context) Value
// method, one more virtual-dispatch surface), a tree.Node here is inert
// — all evaluation logic lives in package eval, keeping the tree/value
// split spec.md's component table (C vs D) draws explicit in code.
package tree

import "mathex.dev/calcex/value"

// Node is the marker interface implemented by every tree variant. It
// carries no behaviour; eval.Eval type-switches on the concrete type.
type Node interface {
	node()
}

// Literal is a fully-reduced constant, produced by numeric-literal
// parsing and as the implicit zero of a leading unary minus.
type Literal struct {
	Value value.Value
}

func (Literal) node() {}

// Name is a deferred variable (or zero-arity function) lookup.
type Name struct {
	Identifier string
}

func (Name) node() {}

// Application is a generic application of an operator alias or a
// user-defined function name to its argument subtrees. Arity is
// enforced by package eval once it resolves Operator in the registry.
type Application struct {
	Operator string
	Args     []Node
}

func (Application) node() {}

// VectorLiteral is `{a, b, c}`.
type VectorLiteral struct {
	Elements []Node
}

func (VectorLiteral) node() {}

// MatrixLiteral is `[row1; row2; ...]`, each row itself a list of
// element subtrees (not yet wrapped as VectorLiteral, since a ragged row
// must be caught with row/column context rather than as a generic
// vector-length mismatch).
type MatrixLiteral struct {
	Rows [][]Node
}

func (MatrixLiteral) node() {}

// Assign is `name := expr`.
type Assign struct {
	Identifier string
	Value      Node
}

func (Assign) node() {}

// FunctionDefinition is `name(p1, p2, ...) := expr`.
type FunctionDefinition struct {
	Identifier string
	Params     []string
	Source     string
	Body       Node
}

func (FunctionDefinition) node() {}

// ClearVars is the reserved `clearvars` token, modeled as its own node.
// Evaluating it resets the context and yields the rational 0; it is an
// ordinary operand, so it does not take on the value of any expression
// that follows it.
type ClearVars struct{}

func (ClearVars) node() {}
