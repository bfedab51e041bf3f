package rational

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, n, d int64) Rational {
	t.Helper()
	r, err := New(n, d)
	require.NoError(t, err)
	return r
}

func TestNewReducesAndNormalizesSign(t *testing.T) {
	r := mustNew(t, 6, -8)
	assert.Equal(t, "-3/4", r.String())

	r = mustNew(t, -10, -5)
	assert.Equal(t, "2", r.String())
	assert.True(t, r.IsInteger())

	r = mustNew(t, 0, -7)
	assert.Equal(t, "0", r.String())
	assert.Equal(t, 0, r.Sign())
}

func TestNewZeroDenominator(t *testing.T) {
	_, err := New(1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestFromDecimalLiteral(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"7", "7"},
		{"3.5", "7/2"},
		{"2.25", "9/4"},
		{".5", "1/2"},
		{"5.", "5"},
		{"0.10", "1/10"},
		{"007", "7"},
		{"12345678901234567890.5", "24691357802469135781/2"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, err := FromDecimalLiteral(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.String())
		})
	}
}

func TestFromDecimalLiteralRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", ".", "1.2.3", "1a", "-1"} {
		_, err := FromDecimalLiteral(in)
		assert.ErrorIs(t, err, ErrMalformedLiteral, in)
	}
}

func TestArithmetic(t *testing.T) {
	half := mustNew(t, 1, 2)
	third := mustNew(t, 1, 3)

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Subtract(third).String())
	assert.Equal(t, "1/6", half.Multiply(third).String())

	q, err := half.Divide(third)
	require.NoError(t, err)
	assert.Equal(t, "3/2", q.String())

	assert.Equal(t, "-1/2", half.Negate().String())
}

func TestDivideByZero(t *testing.T) {
	_, err := FromInteger(5).Divide(FromInteger(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	var zero Rational
	_, err = FromInteger(5).Divide(zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestOperationsDoNotMutate(t *testing.T) {
	a := mustNew(t, 2, 3)
	b := mustNew(t, 4, 5)
	_ = a.Add(b)
	_ = a.Multiply(b)
	_, _ = a.Divide(b)
	_ = a.Negate()
	assert.Equal(t, "2/3", a.String())
	assert.Equal(t, "4/5", b.String())
}

func TestEqualsAndConversions(t *testing.T) {
	a := mustNew(t, 20, 2)
	assert.True(t, a.Equals(FromInteger(10)))
	assert.False(t, a.Equals(mustNew(t, 21, 2)))

	v, ok := a.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(10), v)

	_, ok = mustNew(t, 1, 3).Int64()
	assert.False(t, ok)

	assert.InDelta(t, 0.3333333, mustNew(t, 1, 3).Float64(), 1e-6)
}

func TestZeroValueIsZero(t *testing.T) {
	var z Rational
	assert.Equal(t, "0", z.String())
	assert.True(t, z.Add(FromInteger(3)).Equals(FromInteger(3)))
}
