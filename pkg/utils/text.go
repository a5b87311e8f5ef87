package utils

import "strings"

// PreviewText trims s and cuts it to max runes for log lines.
func PreviewText(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
