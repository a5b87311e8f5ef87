package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalValues(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2+2", 4},
		{"2^10", 1024},
		{"12.5*3-2^2", 33.5},
		{"2^3^2", 512},
		{"-2^2", -4},
		{"2^-1", 0.5},
		{"(1+2)*3", 9},
		{"1+2*3", 7},
		{"10/4", 2.5},
		{"8/2/2", 2},
		{"10-3-2", 5},
		{"--3", 3},
		{"+4", 4},
		{".5+5.", 5.5},
		{" ( 7 ) ", 7},
		{"-(3-5)", 2},
		{"0*-1", 0},
	}

	for _, tc := range cases {
		got, err := Eval(tc.expr)
		require.NoError(t, err, tc.expr)
		assert.InDelta(t, tc.want, got, 1e-9, tc.expr)
	}
}

func TestEvalRejectsDisallowedCharacters(t *testing.T) {
	for _, expr := range []string{"DROP TABLE", "2+x", "Math.pow(2,3)", "1,5", "2**3;alert(1)", "", "1e3"} {
		_, err := Eval(expr)
		require.ErrorIs(t, err, ErrInvalidExpression, expr)
	}
}

func TestEvalRejectsMalformedSyntax(t *testing.T) {
	for _, expr := range []string{"2+", "()", "(1+2", "1+2)", "1.2.3", ".", "1 2", "*3", "2^"} {
		_, err := Eval(expr)
		require.ErrorIs(t, err, ErrInvalidExpression, expr)
	}
}

func TestEvalNonNumericResults(t *testing.T) {
	for _, expr := range []string{"1/0", "-1/0", "0/0", "10^400"} {
		_, err := Eval(expr)
		require.ErrorIs(t, err, ErrNonNumericResult, expr)
	}
}

func TestEvalNestingLimit(t *testing.T) {
	deep := ""
	for i := 0; i < maxDepth+10; i++ {
		deep += "("
	}
	deep += "1"
	for i := 0; i < maxDepth+10; i++ {
		deep += ")"
	}

	_, err := Eval(deep)
	require.ErrorIs(t, err, ErrInvalidExpression)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "4", Format(4))
	assert.Equal(t, "1024", Format(1024))
	assert.Equal(t, "33.5", Format(33.5))
	assert.Equal(t, "-0.25", Format(-0.25))
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "1e+21", Format(1e21))
	assert.Equal(t, "1.2345e+25", Format(1.2345e25))
	assert.Equal(t, "1e-7", Format(1e-7))
	assert.Equal(t, "1.5e-7", Format(1.5e-7))
	assert.Equal(t, "-2.5e-10", Format(-2.5e-10))
	assert.Equal(t, "0.000001", Format(1e-6))
}
