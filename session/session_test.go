package session_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/convert"
	"mathex.dev/calcex/eval"
	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/session"
	"mathex.dev/calcex/value"
)

func newContext(t *testing.T) *eval.Context {
	t.Helper()
	reg, err := registry.NewFullRegistry()
	require.NoError(t, err)
	return eval.New(reg, convert.NullConverter{})
}

func TestSaveLoadRoundTripsScalarVariables(t *testing.T) {
	src := newContext(t)
	require.NoError(t, src.AssignGlobal("r", value.RationalFromInt64(7)))
	require.NoError(t, src.AssignGlobal("pi2", value.NewDouble(6.28)))
	require.NoError(t, src.AssignGlobal("ok", value.NewBool(true)))
	require.NoError(t, src.AssignGlobal("huge", value.NewDouble(math.Inf(1))))
	require.NoError(t, src.AssignGlobal("bad", value.NewDouble(math.NaN())))
	require.NoError(t, src.AssignGlobal("discount", value.NewPercent(15)))

	var buf bytes.Buffer
	require.NoError(t, session.Save(src, &buf))

	dst := newContext(t)
	require.NoError(t, session.Load(dst, &buf))

	v, ok := dst.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, "7", v.String())

	v, ok = dst.Lookup("pi2")
	require.True(t, ok)
	f, _ := v.Float64()
	assert.InDelta(t, 6.28, f, 1e-9)

	v, ok = dst.Lookup("ok")
	require.True(t, ok)
	b, _ := v.BoolValue()
	assert.True(t, b)

	v, ok = dst.Lookup("huge")
	require.True(t, ok)
	f, _ = v.Float64()
	assert.True(t, math.IsInf(f, 1))

	v, ok = dst.Lookup("bad")
	require.True(t, ok)
	f, _ = v.Float64()
	assert.True(t, math.IsNaN(f))

	v, ok = dst.Lookup("discount")
	require.True(t, ok)
	pct, _ := v.PercentValue()
	assert.InDelta(t, 15.0, pct, 1e-9)
}

func TestSaveLoadRoundTripsVectorsAndMatrices(t *testing.T) {
	src := newContext(t)
	vec := value.NewVector([]value.Value{value.RationalFromInt64(1), value.RationalFromInt64(2), value.RationalFromInt64(3)})
	require.NoError(t, src.AssignGlobal("v", vec))
	mat, err := value.NewMatrixFromRows([][]value.Value{
		{value.RationalFromInt64(1), value.RationalFromInt64(2)},
		{value.RationalFromInt64(3), value.RationalFromInt64(4)},
	})
	require.NoError(t, err)
	require.NoError(t, src.AssignGlobal("m", mat))

	var buf bytes.Buffer
	require.NoError(t, session.Save(src, &buf))

	dst := newContext(t)
	require.NoError(t, session.Load(dst, &buf))

	v, ok := dst.Lookup("v")
	require.True(t, ok)
	assert.Equal(t, "{1, 2, 3}", v.String())

	m, ok := dst.Lookup("m")
	require.True(t, ok)
	assert.Equal(t, "[1, 2; 3, 4]", m.String())
}

func TestSaveLoadRoundTripsFunctions(t *testing.T) {
	src := newContext(t)
	require.NoError(t, src.AssignGlobal("unused", value.NewDouble(1)))
	require.NoError(t, src.DefineFunction("double", value.NewFunction("double", []string{"x"}, "x + x", nil)))

	var buf bytes.Buffer
	require.NoError(t, session.Save(src, &buf))

	dst := newContext(t)
	require.NoError(t, session.Load(dst, &buf))

	fn, ok := dst.Function("double")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, fn.Params)
	assert.Equal(t, "x + x", fn.Source)
}

func TestSaveExcludesReservedConstants(t *testing.T) {
	src := newContext(t)
	var buf bytes.Buffer
	require.NoError(t, session.Save(src, &buf))
	assert.NotContains(t, buf.String(), `"pi"`)
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	dst := newContext(t)
	err := session.Load(dst, bytes.NewBufferString("not json"))
	require.Error(t, err)
}
