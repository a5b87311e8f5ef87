package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseLeadingInt reads an optionally signed run of leading decimal digits and
// ignores whatever follows ("20abc" -> 20). ok is false when no digits lead the
// string. Values beyond the int range saturate to math.MaxInt or math.MinInt.
func ParseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}
