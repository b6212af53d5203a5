package duration

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10m", 600},
		{"2h", 7200},
		{"1h30m", 5400},
		{"1d", 86400},
		{"1d2h3m4s", 93784},
		{"90", 90},
		{"45s", 45},
		{"  10M ", 600},
		// Trailing digits reuse the last unit seen, so "30" here means 30
		// more hours rather than minutes. Surprising, but it is how the
		// commands have always read it.
		{"2h30", 115200},
		{"1m30", 1860},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"m10", ErrDanglingUnit},
		{"1hm", ErrDanglingUnit},
		{"10x", ErrInvalidCharacter},
		{"ten minutes", ErrInvalidCharacter},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		assert.ErrorIs(t, err, tc.want, "input %q", tc.in)
	}
}

func TestParseOverflow(t *testing.T) {
	cases := []string{
		strings.Repeat("9", 25),        // digit accumulation overflows
		"999999999999999d",             // multiplier overflows
		"9223372036854775807s1h",       // total overflows on the second segment
		"1d999999999999999",            // trailing digits reuse the day unit
	}
	for _, in := range cases {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrTooLarge, "input %q", in)
	}

	// The largest representable totals still parse.
	got, err := Parse("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), got)
}
