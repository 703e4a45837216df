package render

import (
	"strconv"

	"github.com/gaurav-prasanna/pagestat/core/count"
)

type statRow struct {
	label string
	value int
}

// statRows lists the twelve counters in report order.
func statRows(s count.Stats) []statRow {
	return []statRow{
		{"Characters", s.Characters},
		{"Words", s.Words},
		{"Lines", s.Lines},
		{"Sentences", s.Sentences},
		{"Paragraphs", s.Paragraphs},
		{"Vowels", s.Vowels},
		{"Consonants", s.Consonants},
		{"Digits", s.Digits},
		{"Uppercase", s.Uppercase},
		{"Lowercase", s.Lowercase},
		{"Spaces", s.Spaces},
		{"Punctuation", s.Punctuation},
	}
}

// displayKey makes whitespace keys visible in tables ("\n" instead of a line break).
func displayKey(key string) string {
	switch key {
	case " ":
		return "␠"
	case "\n", "\r", "\t":
		q := strconv.Quote(key)
		return q[1 : len(q)-1]
	}
	return escapeCell(key)
}
