package utils

import (
	"regexp"
	"strings"
)

// plateRe matches an Indian registration plate after normalization:
// 2 letters (state), 1-2 digits (RTO), 1-2 letters (series), 4 digits.
// Example: MH12AB1234.
var plateRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{4}$`)

// NormalizePlate upper-cases a plate and strips whitespace and hyphens.
// Guards type plates with arbitrary spacing ("ka 05-mz-1234") and this
// folds every variant onto the stored form. Normalization is idempotent.
func NormalizePlate(s string) string {
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
			return -1
		}
		return r
	}, s)
}

// ValidPlate reports whether an already-normalized plate matches the
// expected registration format.
func ValidPlate(s string) bool {
	return plateRe.MatchString(s)
}
