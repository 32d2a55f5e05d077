package common

import (
	"strings"
	"unicode/utf8"
)

// MaxLabelLength applies to wallet labels and categories
const MaxLabelLength = 32

// CleanLabel trims s and checks its length.
// An empty result is valid and means "no label".
func CleanLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxLabelLength {
		return "", false
	}
	return s, true
}
