package malayalam

import (
	"strings"
	"unicode"
)

// Punctuation allowed inside a submission besides Malayalam script and
// whitespace.
const allowedPunctuation = ",.!?:"

// IsMalayalam reports whether text is acceptable as a dialogue submission:
// every rune must be in the Malayalam Unicode block (U+0D00–U+0D7F),
// whitespace, or one of the allowed punctuation marks. Blank text is
// rejected.
func IsMalayalam(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, r := range text {
		if r >= 0x0D00 && r <= 0x0D7F {
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(allowedPunctuation, r) {
			continue
		}
		return false
	}
	return true
}
