package util

import "strings"

// SanitizeText strips characters Postgres text columns reject. PDF extraction
// in particular can emit NUL bytes and stray control characters; common
// whitespace (newline, carriage return, tab) passes through untouched.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	cleaned := strings.Map(func(ch rune) rune {
		switch ch {
		case '\n', '\r', '\t':
			return ch
		}
		if ch < 0x20 {
			return -1
		}
		return ch
	}, s)
	return strings.TrimSpace(cleaned)
}
