// Package normalize implements the Normalizer interface.
// It converts cleaned HTML into Markdown, which serves as the
// canonical intermediate format, and offers the text passes applied
// before counting: Markdown stripping and Unicode NFC composition.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/text/unicode/norm"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// NFC composes text into Unicode Normalization Form C, so "e" followed by
// a combining acute accent counts as the single character "é".
func NFC(text string) string {
	return norm.NFC.String(text)
}
