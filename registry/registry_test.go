package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/registry"
	"mathex.dev/calcex/value"
)

type fakeContext struct {
	angle registry.AngleMode
	vars  map[string]value.Value
}

func (f fakeContext) AngleMode() registry.AngleMode { return f.angle }
func (f fakeContext) Converter() registry.Converter { return nil }
func (f fakeContext) Lookup(name string) (value.Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func TestInstallRejectsDuplicateAlias(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Install(&registry.Descriptor{Aliases: []string{"+"}, Precedence: registry.PrecAddSub, Arity: registry.Binary}))
	err := r.Install(&registry.Descriptor{Aliases: []string{"+"}, Precedence: registry.PrecAddSub, Arity: registry.Binary})
	require.Error(t, err)
}

func TestInstallRejectsEmptyAliasList(t *testing.T) {
	r := registry.New()
	err := r.Install(&registry.Descriptor{Precedence: registry.PrecAddSub, Arity: registry.Binary})
	require.Error(t, err)
}

func TestFindOperatorAtLongestMatch(t *testing.T) {
	r, err := registry.NewFullRegistry()
	require.NoError(t, err)

	d, alias, ok := r.FindOperatorAt("<=5", 0)
	require.True(t, ok)
	assert.Equal(t, "<=", alias)
	assert.Equal(t, registry.PrecRelational, d.Precedence)
}

func TestFindOperatorAtDoesNotMatchInsideIdentifier(t *testing.T) {
	r, err := registry.NewFullRegistry()
	require.NoError(t, err)

	_, _, ok := r.FindOperatorAt("android", 0)
	assert.False(t, ok, "word alias 'and' must not match inside 'android'")

	d, alias, ok := r.FindOperatorAt("true and false", 5)
	require.True(t, ok)
	assert.Equal(t, "and", alias)
	assert.Equal(t, registry.PrecLogical, d.Precedence)
}

func TestArithmeticPrecedenceOrdering(t *testing.T) {
	r, err := registry.NewBinaryRegistry()
	require.NoError(t, err)

	assert.Less(t, r.PrecedenceOf("^"), r.PrecedenceOf("*"))
	assert.Less(t, r.PrecedenceOf("*"), r.PrecedenceOf("+"))
	assert.Equal(t, r.PrecedenceOf("*"), r.PrecedenceOf("/"))
}

func TestTrigRespectsAngleMode(t *testing.T) {
	r, err := registry.NewSimpleRegistry()
	require.NoError(t, err)
	d, ok := r.Find("sin")
	require.True(t, ok)

	ctx := fakeContext{angle: registry.Degrees}
	result, err := d.Reduce(ctx, []value.Value{value.NewDouble(90)})
	require.NoError(t, err)
	f, _ := result.Float64()
	assert.InDelta(t, 1.0, f, 1e-9)
}

func TestWhereFiltersByMask(t *testing.T) {
	r, err := registry.NewFullRegistry()
	require.NoError(t, err)
	d, ok := r.Find("where")
	require.True(t, ok)

	data := value.NewVector([]value.Value{value.RationalFromInt64(1), value.RationalFromInt64(2), value.RationalFromInt64(3)})
	mask := value.NewVector([]value.Value{value.NewBool(true), value.NewBool(false), value.NewBool(true)})

	result, err := d.Reduce(fakeContext{}, []value.Value{data, mask})
	require.NoError(t, err)
	elems, _ := result.VectorElems()
	require.Len(t, elems, 2)
}

func TestSelectPicksByIndex(t *testing.T) {
	r, err := registry.NewFullRegistry()
	require.NoError(t, err)
	d, ok := r.Find("select")
	require.True(t, ok)

	data := value.NewVector([]value.Value{value.RationalFromInt64(10), value.RationalFromInt64(20), value.RationalFromInt64(30)})
	indices := value.NewVector([]value.Value{value.RationalFromInt64(2), value.RationalFromInt64(0)})

	result, err := d.Reduce(fakeContext{}, []value.Value{data, indices})
	require.NoError(t, err)
	elems, _ := result.VectorElems()
	require.Len(t, elems, 2)
	r0, _ := elems[0].Rat()
	assert.Equal(t, int64(30), r0.Num().Int64())
}

func TestPercentOfAndAsPercentOf(t *testing.T) {
	r, err := registry.NewSimpleRegistry()
	require.NoError(t, err)

	of, ok := r.Find("percent of")
	require.True(t, ok)
	result, err := of.Reduce(fakeContext{}, []value.Value{value.NewDouble(11), value.NewDouble(26)})
	require.NoError(t, err)
	f, _ := result.Float64()
	assert.InDelta(t, 2.86, f, 1e-9)

	as, ok := r.Find("as a % of")
	require.True(t, ok)
	result, err = as.Reduce(fakeContext{}, []value.Value{value.NewDouble(26), value.NewDouble(200)})
	require.NoError(t, err)
	pct, _ := result.PercentValue()
	assert.InDelta(t, 13.0, pct, 1e-9)
}

func TestNewFullRegistryInstallsEveryFamily(t *testing.T) {
	r, err := registry.NewFullRegistry()
	require.NoError(t, err)
	for _, alias := range []string{"^", "*", "/", "+", "-", "matmul", "sin", "cos", "tan", "abs", "ln", "log", "sum", "sort", "factorial", "percent", "toRational", "toDouble", "<", "<=", ">", ">=", "==", "!=", "and", "or", "xor", "where", "select", "in", "to", "as"} {
		_, ok := r.Find(alias)
		assert.True(t, ok, "expected alias %q to be installed", alias)
	}
}
