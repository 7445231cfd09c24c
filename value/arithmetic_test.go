package value_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/value"
)

func rat(n, d int64) value.Value { return value.NewRational(big.NewRat(n, d)) }

func TestAddRationalStaysExact(t *testing.T) {
	sum, err := value.Add(rat(1, 3), rat(1, 6))
	require.NoError(t, err)
	r, ok := sum.Rat()
	require.True(t, ok)
	assert.Equal(t, big.NewRat(1, 2), r)
}

func TestDivisionByZeroIsArithmeticError(t *testing.T) {
	_, err := value.Div(rat(1, 1), rat(0, 1))
	require.Error(t, err)
	var ae value.ArithmeticError
	assert.ErrorAs(t, err, &ae)
}

func TestMixingDoubleDemotesToDouble(t *testing.T) {
	sum, err := value.Add(rat(1, 2), value.NewDouble(0.5))
	require.NoError(t, err)
	assert.Equal(t, value.Double, sum.Kind())
	f, _ := sum.Float64()
	assert.InDelta(t, 1.0, f, 1e-12)
}

func TestPercentTimesPercentStaysPercent(t *testing.T) {
	// 10% * 10% == 1% (0.1 * 0.1 == 0.01 == "1%")
	p, err := value.Mul(value.NewPercent(10), value.NewPercent(10))
	require.NoError(t, err)
	assert.Equal(t, value.Percent, p.Kind())
	pv, _ := p.PercentValue()
	assert.InDelta(t, 1.0, pv, 1e-12)
}

func TestPercentTimesNumberPromotesToDouble(t *testing.T) {
	// Decided in SPEC_FULL.md §9.1: Percent <> Number promotes to Double.
	v, err := value.Mul(value.NewPercent(11), rat(26, 1))
	require.NoError(t, err)
	assert.Equal(t, value.Double, v.Kind())
	f, _ := v.Float64()
	assert.InDelta(t, 2.86, f, 1e-9)
}

func TestVectorZeroPadding(t *testing.T) {
	v1 := value.NewVector([]value.Value{rat(1, 1), rat(2, 1), rat(3, 1)})
	v2 := value.NewVector([]value.Value{rat(10, 1)})
	sum, err := value.Add(v1, v2)
	require.NoError(t, err)
	elems, _ := sum.VectorElems()
	require.Len(t, elems, 3)
	assert.Equal(t, "11", elems[0].String())
	assert.Equal(t, "2", elems[1].String())
	assert.Equal(t, "3", elems[2].String())
}

func TestMatrixElementwiseVsInnerProduct(t *testing.T) {
	m, err := value.NewMatrixFromRows([][]value.Value{
		{rat(1, 1), rat(2, 1)},
		{rat(3, 1), rat(4, 1)},
	})
	require.NoError(t, err)

	elementwise, err := value.Mul(m, m)
	require.NoError(t, err)
	assert.Equal(t, "[1, 4; 9, 16]", elementwise.String())

	inner, err := value.MatMul(m, m)
	require.NoError(t, err)
	assert.Equal(t, "[7, 10; 15, 22]", inner.String())
}

func TestMatMulShapeMismatch(t *testing.T) {
	a, _ := value.NewMatrixFromRows([][]value.Value{{rat(1, 1), rat(2, 1)}})
	b, _ := value.NewMatrixFromRows([][]value.Value{{rat(1, 1), rat(2, 1)}})
	_, err := value.MatMul(a, b)
	require.Error(t, err)
	var se value.ShapeError
	assert.ErrorAs(t, err, &se)
}

func TestRaggedMatrixLiteralIsShapeError(t *testing.T) {
	_, err := value.NewMatrixFromRows([][]value.Value{
		{rat(1, 1), rat(2, 1)},
		{rat(3, 1)},
	})
	require.Error(t, err)
	var se value.ShapeError
	assert.ErrorAs(t, err, &se)
}

func TestArithmeticOnFunctionIsTypeError(t *testing.T) {
	fn := value.NewFunction("f", []string{"x"}, "x + 1", nil)
	_, err := value.Add(fn, rat(1, 1))
	require.Error(t, err)
	var te value.TypeError
	assert.ErrorAs(t, err, &te)
}

func TestToRationalRoundTrip(t *testing.T) {
	r := rat(7, 16)
	f, err := value.ToDouble(r)
	require.NoError(t, err)
	back, err := value.ToRational(value.NewDouble(f))
	require.NoError(t, err)
	rr, _ := back.Rat()
	assert.Equal(t, big.NewRat(7, 16), rr)
}
