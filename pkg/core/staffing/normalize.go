package staffing

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a role name or skill token so comparisons ignore case,
// punctuation and spacing. The result only contains [a-z0-9] and single spaces.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case r == '_' || r == '-' || unicode.IsSpace(r):
			pendingSpace = true
		}
		// Anything else is dropped without introducing a word break
	}

	return b.String()
}

// Tokens splits a normalized string into its words
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}
