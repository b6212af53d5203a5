// Package duration parses compact human duration strings such as "2h30m"
// into a number of seconds.
package duration

import (
	"errors"
	"math"
	"strings"
)

var (
	// ErrEmpty is returned for empty (or all-whitespace) input.
	ErrEmpty = errors.New("duration: empty input")
	// ErrDanglingUnit is returned when a unit character has no digits before it.
	ErrDanglingUnit = errors.New("duration: unit without a preceding number")
	// ErrInvalidCharacter is returned for anything outside [0-9smhd].
	ErrInvalidCharacter = errors.New("duration: invalid character (use s/m/h/d)")
	// ErrTooLarge is returned when the total would overflow int64 seconds.
	ErrTooLarge = errors.New("duration: value out of range")
)

var multipliers = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
}

// Parse converts strings like "10m", "2h", "1d30m" into seconds.
// A trailing run of digits without a unit is attributed the last unit seen,
// or seconds if no unit appeared ("90" == 90s). This mirrors the behavior
// the commands were written against; "2h30" therefore means 30 more hours,
// not 30 minutes. Totals that do not fit in int64 seconds are rejected.
func Parse(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrEmpty
	}

	var total int64
	var num int64
	haveDigits := false
	last := byte('s')

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			if num > (math.MaxInt64-int64(ch-'0'))/10 {
				return 0, ErrTooLarge
			}
			num = num*10 + int64(ch-'0')
			haveDigits = true
		default:
			mult, ok := multipliers[ch]
			if !ok {
				return 0, ErrInvalidCharacter
			}
			if !haveDigits {
				return 0, ErrDanglingUnit
			}
			if total, ok = accumulate(total, num, mult); !ok {
				return 0, ErrTooLarge
			}
			num = 0
			haveDigits = false
			last = ch
		}
	}
	if haveDigits {
		var ok bool
		if total, ok = accumulate(total, num, multipliers[last]); !ok {
			return 0, ErrTooLarge
		}
	}
	return total, nil
}

// accumulate returns total + num*mult, reporting false on int64 overflow.
func accumulate(total, num, mult int64) (int64, bool) {
	if num > math.MaxInt64/mult {
		return 0, false
	}
	part := num * mult
	if total > math.MaxInt64-part {
		return 0, false
	}
	return total + part, true
}
