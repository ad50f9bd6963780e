package model

import (
	"regexp"
	"strings"
)

var markupTag = regexp.MustCompile(`<[^>]*>`)

// Sanitize strips markup tags and surrounding whitespace.
//
// Sanitize(Sanitize(s)) == Sanitize(s): a '<' left behind by the first pass
// has no '>' after it, so no new tag can appear.
func Sanitize(s string) string {
	return strings.TrimSpace(markupTag.ReplaceAllString(s, ""))
}

// ParseCounter reads a leading, optionally signed, decimal integer from s.
// Leading whitespace is skipped and parsing stops at the first non-digit.
// Input without digits, or out of int range, yields 0.
func ParseCounter(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	const limit = int64(1) << 53
	var n int64
	digits := 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
		if n > limit {
			return 0
		}
	}
	if digits == 0 {
		return 0
	}
	if neg {
		n = -n
	}
	return int(n)
}
