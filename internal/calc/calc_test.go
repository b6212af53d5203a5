package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2+2", 4},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"1,5 + 1,5", 3},
		{"-3 + 5", 2},
		{"2 * -3", -6},
		{"((1))", 1},
		{"100 - 25 - 25", 50},
	}
	for _, tc := range cases {
		got, err := Eval(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"1/0", ErrDivisionByZero},
		{"2+", ErrSyntax},
		{"(1+2", ErrSyntax},
		{"1+2)", ErrSyntax},
		{"2**3", ErrSyntax},
		{"os.system('x')", ErrInvalidCharacter},
		{"1+x", ErrInvalidCharacter},
	}
	for _, tc := range cases {
		_, err := Eval(tc.in)
		assert.ErrorIs(t, err, tc.want, "input %q", tc.in)
	}
}
