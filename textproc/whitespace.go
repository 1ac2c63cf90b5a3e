package textproc

import "strings"

// normalizeWhitespace collapses runs of spaces into one, trims the ends,
// and removes spaces left hanging before closing punctuation. Newlines
// and tabs are intentional output and survive untouched.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, c := range s {
		if c == ' ' || c == '\r' || (c != '\n' && c != '\t' && isSpaceRune(c)) {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		if prevSpace && isClosingPunct(c) {
			// drop the pending space: "word ." reads as "word."
			out := b.String()
			b.Reset()
			b.WriteString(out[:len(out)-1])
		}
		b.WriteRune(c)
		prevSpace = false
	}
	return strings.TrimSpace(b.String())
}

func isSpaceRune(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x85, 0xA0:
		return true
	}
	return false
}

func isClosingPunct(c rune) bool {
	switch c {
	case '.', ',', '!', '?', ';', ':', ')', ']', '}':
		return true
	}
	return false
}
