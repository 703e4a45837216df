// Package count implements the text statistics counters.
// Every function is a pure function of its input: no I/O, no shared
// mutable state, safe for concurrent use. A "character" is a rune.
package count

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// asciiSet is a fixed lookup table over the ASCII range.
type asciiSet [utf8.RuneSelf]bool

func newASCIISet(chars string) *asciiSet {
	var s asciiSet
	for i := 0; i < len(chars); i++ {
		s[chars[i]] = true
	}
	return &s
}

func (s *asciiSet) has(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && s[r]
}

// Character classes. Built once, never mutated.
var (
	vowelSet       = newASCIISet("aeiouAEIOU")
	consonantSet   = newASCIISet("bcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ")
	digitSet       = newASCIISet("0123456789")
	upperSet       = newASCIISet("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	lowerSet       = newASCIISet("abcdefghijklmnopqrstuvwxyz")
	punctuationSet = newASCIISet("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~")
)

// sentenceBoundary treats a run of terminators ("...", "?!") as one split point.
var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// paragraphBoundary is a line terminator, optional whitespace, then another
// line terminator.
var paragraphBoundary = regexp.MustCompile(`(?:\r\n|\r|\n)[\s\p{Zs}]*(?:\r\n|\r|\n)`)

// Characters returns the number of runes in text.
func Characters(text string) int {
	return utf8.RuneCountInString(text)
}

// Words counts whitespace-separated tokens. Punctuation never splits a word,
// so "hello-world" and "hello.world" are one word each.
func Words(text string) int {
	return len(strings.Fields(text))
}

// Lines counts line terminators plus one. "\r\n" is a single terminator;
// bare "\n" and bare "\r" each count. An empty text is one empty line.
func Lines(text string) int {
	lines := 1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		}
	}
	return lines
}

// Sentences counts the non-blank segments between runs of '.', '!' and '?'.
func Sentences(text string) int {
	if text == "" {
		return 0
	}
	return countNonBlank(sentenceBoundary.Split(text, -1))
}

// Paragraphs counts the non-blank segments between blank lines.
func Paragraphs(text string) int {
	if text == "" {
		return 0
	}
	return countNonBlank(paragraphBoundary.Split(text, -1))
}

func countNonBlank(segments []string) int {
	n := 0
	for _, seg := range segments {
		if strings.TrimSpace(seg) != "" {
			n++
		}
	}
	return n
}

// Vowels counts a, e, i, o, u in either case.
func Vowels(text string) int { return countSet(text, vowelSet) }

// Consonants counts ASCII letters that are not vowels.
func Consonants(text string) int { return countSet(text, consonantSet) }

// Digits counts ASCII 0-9.
func Digits(text string) int { return countSet(text, digitSet) }

// Uppercase counts ASCII A-Z.
func Uppercase(text string) int { return countSet(text, upperSet) }

// Lowercase counts ASCII a-z.
func Lowercase(text string) int { return countSet(text, lowerSet) }

// Punctuation counts the 32 ASCII punctuation symbols. Unicode punctuation
// such as '…' or '¿' is deliberately not counted.
func Punctuation(text string) int { return countSet(text, punctuationSet) }

// Spaces counts whitespace runes of any kind (space, tab, newline, NBSP...).
func Spaces(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func countSet(text string, set *asciiSet) int {
	n := 0
	for i := 0; i < len(text); i++ {
		// Multi-byte runes never match an ASCII table, and none of their
		// bytes fall below RuneSelf, so a byte scan is exact.
		if set.has(rune(text[i])) {
			n++
		}
	}
	return n
}
