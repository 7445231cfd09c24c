package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/convert"
	"mathex.dev/calcex/errs"
	"mathex.dev/calcex/eval"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/tree"
	"mathex.dev/calcex/value"
)

func newContext(t *testing.T) *eval.Context {
	t.Helper()
	reg, err := registry.NewFullRegistry()
	require.NoError(t, err)
	return eval.New(reg, convert.NullConverter{})
}

func lit(n int64) tree.Node {
	return tree.Literal{Value: value.RationalFromInt64(n)}
}

func TestEvalLiteral(t *testing.T) {
	ctx := newContext(t)
	v, err := eval.Eval(lit(42), ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
}

func TestEvalArithmeticApplication(t *testing.T) {
	ctx := newContext(t)
	node := tree.Application{Operator: "+", Args: []tree.Node{lit(2), lit(3)}}
	v, err := eval.Eval(node, ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", v.String())
}

func TestEvalUndefinedNameIsNameError(t *testing.T) {
	ctx := newContext(t)
	_, err := eval.Eval(tree.Name{Identifier: "nope"}, ctx)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Name))
}

func TestEvalAssignThenLookup(t *testing.T) {
	ctx := newContext(t)
	_, err := eval.Eval(tree.Assign{Identifier: "x", Value: lit(10)}, ctx)
	require.NoError(t, err)
	v, err := eval.Eval(tree.Name{Identifier: "x"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", v.String())
}

func TestEvalAssignRejectsOperatorName(t *testing.T) {
	ctx := newContext(t)
	_, err := eval.Eval(tree.Assign{Identifier: "sin", Value: lit(1)}, ctx)
	require.Error(t, err)
}

func TestEvalWrongArityIsSyntaxError(t *testing.T) {
	ctx := newContext(t)
	node := tree.Application{Operator: "+", Args: []tree.Node{lit(2)}}
	_, err := eval.Eval(node, ctx)
	require.Error(t, err)
}

func TestEvalFunctionDefinitionAndApplication(t *testing.T) {
	ctx := newContext(t)
	def := tree.FunctionDefinition{
		Identifier: "double",
		Params:     []string{"x"},
		Source:     "double(x) := x + x",
		Body:       tree.Application{Operator: "+", Args: []tree.Node{tree.Name{Identifier: "x"}, tree.Name{Identifier: "x"}}},
	}
	_, err := eval.Eval(def, ctx)
	require.NoError(t, err)

	call := tree.Application{Operator: "double", Args: []tree.Node{lit(21)}}
	v, err := eval.Eval(call, ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
}

func TestFunctionParametersDoNotLeak(t *testing.T) {
	ctx := newContext(t)
	def := tree.FunctionDefinition{
		Identifier: "identity",
		Params:     []string{"x"},
		Source:     "identity(x) := x",
		Body:       tree.Name{Identifier: "x"},
	}
	_, err := eval.Eval(def, ctx)
	require.NoError(t, err)

	_, err = eval.Eval(tree.Application{Operator: "identity", Args: []tree.Node{lit(7)}}, ctx)
	require.NoError(t, err)

	_, err = eval.Eval(tree.Name{Identifier: "x"}, ctx)
	require.Error(t, err, "x must not leak into the enclosing scope after the call returns")
}

func TestClearVarsResetsToConstants(t *testing.T) {
	ctx := newContext(t)
	_, err := eval.Eval(tree.Assign{Identifier: "x", Value: lit(5)}, ctx)
	require.NoError(t, err)

	_, err = eval.Eval(tree.ClearVars{}, ctx)
	require.NoError(t, err)

	_, err = eval.Eval(tree.Name{Identifier: "x"}, ctx)
	require.Error(t, err)

	v, err := eval.Eval(tree.Name{Identifier: "pi"}, ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, v.String())
}

func TestVectorAndMatrixLiterals(t *testing.T) {
	ctx := newContext(t)
	vec := tree.VectorLiteral{Elements: []tree.Node{lit(1), lit(2), lit(3)}}
	v, err := eval.Eval(vec, ctx)
	require.NoError(t, err)
	elems, ok := v.VectorElems()
	require.True(t, ok)
	assert.Len(t, elems, 3)

	mat := tree.MatrixLiteral{Rows: [][]tree.Node{{lit(1), lit(2)}, {lit(3), lit(4)}}}
	m, err := eval.Eval(mat, ctx)
	require.NoError(t, err)
	md, ok := m.MatrixValue()
	require.True(t, ok)
	assert.Equal(t, 2, md.Rows)
}

func TestRaggedMatrixIsShapeError(t *testing.T) {
	ctx := newContext(t)
	mat := tree.MatrixLiteral{Rows: [][]tree.Node{{lit(1), lit(2)}, {lit(3)}}}
	_, err := eval.Eval(mat, ctx)
	require.Error(t, err)
}
