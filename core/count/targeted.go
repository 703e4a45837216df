package count

import (
	"strings"
	"unicode/utf8"
)

// Character counts exact occurrences of char in text. char must be exactly
// one rune; an empty or multi-rune argument yields 0 rather than being
// truncated.
func Character(text, char string) int {
	if text == "" || utf8.RuneCountInString(char) != 1 {
		return 0
	}
	target, _ := utf8.DecodeRuneInString(char)

	n := 0
	for _, r := range text {
		if r == target {
			n++
		}
	}
	return n
}

// Substring counts occurrences of sub in text, overlaps included:
// Substring("aaa", "aa") == 2. After each match the search resumes one
// character past the start of that match.
func Substring(text, sub string) int {
	if text == "" || sub == "" {
		return 0
	}

	n := 0
	pos := 0
	for {
		idx := strings.Index(text[pos:], sub)
		if idx == -1 {
			return n
		}
		n++
		start := pos + idx
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
		if pos >= len(text) {
			return n
		}
	}
}
