package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent lower-cases s and drops the separators '_', '-' and ' ',
// so "Order_ID" and "orderId" both become "orderid".
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Closest returns the candidate matching name. An exact match wins; otherwise
// the single candidate with the same normalized form is returned. Ambiguous
// normalized matches report false.
func Closest(name string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == name {
			return c, true
		}
	}

	key := NormalizeIdent(name)
	if key == "" {
		return "", false
	}

	found := ""
	for _, c := range candidates {
		if NormalizeIdent(c) != key {
			continue
		}

		if found != "" {
			return "", false
		}

		found = c
	}

	return found, found != ""
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
