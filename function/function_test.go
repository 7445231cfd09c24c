package function_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/function"
	"mathex.dev/calcex/registry"
)

func TestEvaluateAtLinear(t *testing.T) {
	f, err := function.New("2 * x + 1", "x", registry.Radians)
	require.NoError(t, err)
	v, err := f.EvaluateAt(3)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, v, 1e-9)
}

func TestEvaluateAtUsesTrigAngleMode(t *testing.T) {
	f, err := function.New("sin(x)", "x", registry.Degrees)
	require.NoError(t, err)
	v, err := f.EvaluateAt(90)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestEvaluateAtExprComposesAnotherExpression(t *testing.T) {
	f, err := function.New("x * x", "x", registry.Radians)
	require.NoError(t, err)
	v, err := f.EvaluateAtExpr("2 + 1")
	require.NoError(t, err)
	assert.InDelta(t, 9.0, v, 1e-9)
}

func TestCompiledExpressionIsStableAcrossCalls(t *testing.T) {
	f, err := function.New("x + 1", "x", registry.Radians)
	require.NoError(t, err)
	first := f.CompiledExpression()
	_, err = f.EvaluateAt(5)
	require.NoError(t, err)
	assert.Equal(t, first, f.CompiledExpression())
}

func TestVariableReportsDeclaredName(t *testing.T) {
	f, err := function.New("x + 1", "theta", registry.Radians)
	require.NoError(t, err)
	assert.Equal(t, "theta", f.Variable())
}
