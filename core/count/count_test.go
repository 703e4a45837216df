package count_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/pagestat/core/count"
)

func TestCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "hello world", want: 11},
		{name: "japanese", input: "こんにちは", want: 5},
		{name: "emoji", input: "Hello👋", want: 6},
		{name: "newlines count", input: "a\nb\r\n", want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count.Characters(tt.input))
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "only whitespace", input: " \t\n ", want: 0},
		{name: "multiple spaces", input: "  multiple   spaces  ", want: 2},
		{name: "hyphenated", input: "hello-world", want: 1},
		{name: "period joined", input: "hello.world", want: 1},
		{name: "tabs and newlines", input: "one\ttwo\nthree\r\nfour", want: 4},
		{name: "punctuation attached", input: "Hello, world!", want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count.Words(tt.input))
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty is one line", input: "", want: 1},
		{name: "single line", input: "hello", want: 1},
		{name: "trailing terminators", input: "a\n\n", want: 3},
		{name: "crlf is one terminator", input: "a\r\nb", want: 2},
		{name: "bare cr", input: "a\rb\rc", want: 3},
		{name: "adjacent terminators", input: "\n\n", want: 3},
		{name: "mixed", input: "a\r\n\rb\n", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count.Lines(tt.input))
		})
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ellipsis is one boundary", input: "Hello... How are you?", want: 2},
		{name: "no terminator", input: "just words", want: 1},
		{name: "mixed terminators", input: "Wait?! Really. Yes!", want: 3},
		{name: "only terminators", input: "...!?", want: 0},
		{name: "whitespace segments ignored", input: "One.   . Two.", want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count.Sentences(tt.input))
		})
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "only blank lines", input: "\n\n\n", want: 0},
		{name: "two paragraphs", input: "p1\n\np2", want: 2},
		{name: "whitespace-only separator line", input: "p1\n  \t\np2", want: 2},
		{name: "crlf separator", input: "p1\r\n\r\np2\r\n\r\np3", want: 3},
		{name: "single newline keeps paragraph", input: "line one\nline two", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count.Paragraphs(tt.input))
		})
	}
}

func TestCharacterClasses(t *testing.T) {
	const text = `Hello, World! 123 "quoted" ¿Qué? …`

	assert.Equal(t, 7, count.Vowels(text)) // é is not in the table
	assert.Equal(t, 11, count.Consonants(text))
	assert.Equal(t, 3, count.Digits(text))
	assert.Equal(t, 3, count.Uppercase(text))
	assert.Equal(t, 15, count.Lowercase(text))
	assert.Equal(t, 5, count.Spaces(text))
	// ¿ and … are outside the ASCII table.
	assert.Equal(t, 5, count.Punctuation(text))
}

func TestCharacterClassesEmpty(t *testing.T) {
	for name, fn := range map[string]func(string) int{
		"vowels":      count.Vowels,
		"consonants":  count.Consonants,
		"digits":      count.Digits,
		"uppercase":   count.Uppercase,
		"lowercase":   count.Lowercase,
		"spaces":      count.Spaces,
		"punctuation": count.Punctuation,
	} {
		assert.Zero(t, fn(""), name)
	}
}

func TestPunctuationTable(t *testing.T) {
	const ascii = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	assert.Equal(t, 32, count.Punctuation(ascii))
	assert.Zero(t, count.Punctuation("«»—–…¡¿"))
}

func TestSpacesUnicode(t *testing.T) {
	assert.Equal(t, 4, count.Spaces("a b\tc\nd e"))
}

func TestClassSumBoundedByCharacters(t *testing.T) {
	inputs := []string{
		"",
		"Hello, world! This is a sample text.",
		"The text has various characters: letters, numbers (123), and punctuation marks!",
		"日本語 and émigré ©2024 → done",
		"\t\r\n",
	}
	for _, in := range inputs {
		sum := count.Vowels(in) + count.Consonants(in) + count.Digits(in) +
			count.Spaces(in) + count.Punctuation(in)
		assert.LessOrEqual(t, sum, count.Characters(in), in)
	}
}

func TestPurity(t *testing.T) {
	const text = "Repeat after me.\n\nRepeat after me!"
	first := count.Analyze(text)
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, count.Analyze(text)); diff != "" {
			t.Fatalf("Analyze not idempotent (-first +again):\n%s", diff)
		}
	}
}
