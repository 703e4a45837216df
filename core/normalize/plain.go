package normalize

import (
	"regexp"
	"strings"
)

var (
	headingRegex    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	emphasisRegex   = regexp.MustCompile(`\*{1,3}([^*\n]+)\*{1,3}`)
	imageRegex      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	linkRegex       = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	inlineCodeRegex = regexp.MustCompile("`([^`\n]+)`")
	fenceRegex      = regexp.MustCompile("(?m)^[ \t]*```[^\n]*$")
	listMarkerRegex = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+`)
	quoteRegex      = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	tableRuleRegex  = regexp.MustCompile(`(?m)^\|?[ \t]*:?-{3,}:?[ \t]*(?:\|[ \t]*:?-{3,}:?[ \t]*)*\|?[ \t]*\n?`)
	hruleRegex      = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
	blankRunRegex   = regexp.MustCompile(`\n{3,}`)
	escapeRegex     = regexp.MustCompile("\\\\[!-/:-@\\[-`{-~]")
)

// escapeBase shifts backslash-escaped ASCII punctuation into a private-use
// plane so the syntax passes below leave it alone.
const escapeBase = 0xF0000

// PlainText removes common Markdown syntax so only the prose is counted.
// Paragraph breaks survive, which keeps paragraph and line counts meaningful.
func PlainText(md string) string {
	text := escapeRegex.ReplaceAllStringFunc(md, func(esc string) string {
		return string(rune(escapeBase + int(esc[1])))
	})
	text = fenceRegex.ReplaceAllString(text, "")
	text = tableRuleRegex.ReplaceAllString(text, "")
	text = hruleRegex.ReplaceAllString(text, "")
	text = headingRegex.ReplaceAllString(text, "$1")
	text = imageRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	text = emphasisRegex.ReplaceAllString(text, "$1")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = listMarkerRegex.ReplaceAllString(text, "")
	text = quoteRegex.ReplaceAllString(text, "")
	text = blankRunRegex.ReplaceAllString(text, "\n\n")
	text = strings.Map(unescape, text)
	return strings.TrimSpace(text)
}

func unescape(r rune) rune {
	if r >= escapeBase && r < escapeBase+0x80 {
		return r - escapeBase
	}
	return r
}
