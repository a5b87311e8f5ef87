package utils

import (
	"math"
	"testing"
)

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"20", 20, true},
		{" 7 ", 7, true},
		{"20abc", 20, true},
		{"12.9", 12, true},
		{"-5", -5, true},
		{"+3", 3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", math.MaxInt, true},
		{"-99999999999999999999999x", math.MinInt, true},
	}

	for _, tc := range cases {
		got, ok := ParseLeadingInt(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseLeadingInt(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
