package utils

import (
	"strconv"
	"strings"
)

// FormatINR formats a whole-rupee amount as a string like "₹1,23,456".
// Uses Indian digit grouping: the last three digits, then pairs.
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	// Pre-allocate: digits + separators + sign and symbol
	b.Grow(len(s) + len(s)/2 + 5)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")

	if len(s) <= 3 {
		b.WriteString(s)
		return b.String()
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	rem := len(head) % 2
	if rem == 0 {
		rem = 2
	}
	b.WriteString(head[:rem])
	for i := rem; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)

	return b.String()
}

// FormatNightly formats a per-night hotel rate, e.g. "₹8,999/night"
func FormatNightly(amount int64) string {
	return FormatINR(amount) + "/night"
}
