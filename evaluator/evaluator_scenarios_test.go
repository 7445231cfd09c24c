package evaluator_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/evaluator"
	"mathex.dev/calcex/value"
)

// These exercise the end-to-end scenarios the engine's testable
// properties describe: canonical rational reduction, the matrix
// row-length invariant, the `ans` binding, longest-alias-match,
// toRational(toDouble(r)) round-tripping, deterministic reparse, and
// lexical scoping of function parameters — each driven through the
// same façade a caller actually uses (package evaluator), not through
// internals.
func TestScenarioRationalCanonicalization(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	out, err := e.EvaluateString("4/8")
	require.NoError(t, err)
	snaps.MatchSnapshot(t, "rational-canonicalization", out)
}

func TestScenarioMatrixRowLengthInvariant(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	_, err = e.EvaluateConstant("[1, 2; 3, 4, 5]")
	require.Error(t, err)
	snaps.MatchSnapshot(t, "ragged-matrix-error", err.Error())
}

func TestScenarioAnsBindingChain(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	_, err = e.EvaluateConstant("10 / 4")
	require.NoError(t, err)
	out, err := e.EvaluateString("ans + 1")
	require.NoError(t, err)
	snaps.MatchSnapshot(t, "ans-binding-chain", out)
}

func TestScenarioLongestAliasMatch(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	out, err := e.EvaluateString("1 <= 2")
	require.NoError(t, err)
	snaps.MatchSnapshot(t, "longest-alias-match-le", out)

	_, err = e.EvaluateConstant("android")
	require.Error(t, err, "a reserved-word alias must not match inside a longer identifier")
}

func TestScenarioRationalDoubleRoundTrip(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	v, err := e.EvaluateConstant("3/4")
	require.NoError(t, err)
	f, err := value.ToDouble(v)
	require.NoError(t, err)
	back := value.FromFloat64(f)
	snaps.MatchSnapshot(t, "rational-double-round-trip", fmt.Sprintf("%s -> %v -> %s", v.String(), f, back.String()))
}

func TestScenarioDeterministicReparse(t *testing.T) {
	e1, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	e2, err := evaluator.NewEvaluator()
	require.NoError(t, err)

	const source = "2 + 3 * sin(pi / 2) - 1"
	first, err := e1.EvaluateString(source)
	require.NoError(t, err)
	second, err := e2.EvaluateString(source)
	require.NoError(t, err)
	require.Equal(t, first, second, "reparsing the same source must yield the same result")
	snaps.MatchSnapshot(t, "deterministic-reparse", first)
}

func TestScenarioFunctionParametersDoNotEscape(t *testing.T) {
	e, err := evaluator.NewEvaluator()
	require.NoError(t, err)
	require.NoError(t, e.AddVariable("x", value.NewDouble(100)))
	_, err = e.EvaluateConstant("f(x) := x + 1")
	require.NoError(t, err)
	_, err = e.EvaluateConstant("f(5)")
	require.NoError(t, err)
	out, err := e.EvaluateString("x")
	require.NoError(t, err)
	snaps.MatchSnapshot(t, "function-parameter-does-not-leak", out)
}
