package scaffold

import (
	"strings"
	"unicode"
)

// Name transformation helpers

// ToKebabCase lowercases s and inserts "-" before every uppercase letter
// except the first: "UserProfile" -> "user-profile", "ABTest" -> "a-b-test".
func ToKebabCase(s string) string {
	var b strings.Builder
	for i, r := range []rune(s) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
