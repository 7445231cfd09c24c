package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathex.dev/calcex/value"
)

func TestRationalCanonicalization(t *testing.T) {
	v := rat(-4, 8)
	r, _ := v.Rat()
	assert.Equal(t, int64(-1), r.Num().Int64())
	assert.Equal(t, int64(2), r.Denom().Int64())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "3/4", rat(3, 4).String())
	assert.Equal(t, "5", rat(5, 1).String())
	assert.Equal(t, "11%", value.NewPercent(11).String())
	assert.Equal(t, "true", value.NewBool(true).String())
	v := value.NewVector([]value.Value{rat(1, 1), rat(2, 1)})
	assert.Equal(t, "{1, 2}", v.String())
}

func TestNegElementWise(t *testing.T) {
	v := value.NewVector([]value.Value{rat(1, 1), rat(-2, 1)})
	neg, err := value.Neg(v)
	require.NoError(t, err)
	assert.Equal(t, "{-1, 2}", neg.String())
}

func TestSortVector(t *testing.T) {
	v := value.NewVector([]value.Value{rat(3, 1), rat(1, 1), rat(2, 1)})
	sorted, err := value.Sort(v)
	require.NoError(t, err)
	assert.Equal(t, "{1, 2, 3}", sorted.String())
}

func TestFactorial(t *testing.T) {
	f, err := value.Factorial(rat(5, 1))
	require.NoError(t, err)
	assert.Equal(t, "120", f.String())
}

func TestSumVector(t *testing.T) {
	v := value.NewVector([]value.Value{rat(1, 1), rat(2, 1), rat(3, 1)})
	sum, err := value.Sum(v)
	require.NoError(t, err)
	assert.Equal(t, "6", sum.String())
}

func TestEqualAcrossKinds(t *testing.T) {
	eq, err := value.Equal(rat(1, 2), value.NewDouble(0.5))
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestNewMatrixShapeMismatch(t *testing.T) {
	_, err := value.NewMatrix(2, 2, []value.Value{rat(1, 1)})
	require.Error(t, err)
}
