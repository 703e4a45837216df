// Package extract implements the Extractor interface.
// It isolates the main content from a full HTML page by:
//  1. Reading the page title and declared language
//  2. Removing noise elements (nav, footer, scripts, forms, etc.)
//  3. Picking the best content container (<main>, <article>, or <body>)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/pagestat/core"
)

// noise matches elements that contribute no countable prose to the page.
// Compiled once as a single selector group.
var noise = cascadia.MustCompile(strings.Join([]string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "svg", "canvas",
	"iframe", "video", "audio",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}, ", "))

// containers are tried in priority order.
var containers = []cascadia.Selector{
	cascadia.MustCompile("main"),
	cascadia.MustCompile("article"),
	cascadia.MustCompile("body"),
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes raw HTML and returns the cleaned main content together with
// the page title and language (empty when the page does not declare one).
func (e *HTMLExtractor) Extract(html string) (*core.Content, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// Title lives in <head>, read it before the noise pass.
	title := strings.TrimSpace(doc.Find("head title").First().Text())
	lang, _ := doc.Find("html").First().Attr("lang")

	doc.FindMatcher(noise).Remove()

	var content *goquery.Selection
	for _, sel := range containers {
		found := doc.FindMatcher(sel)
		if found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("no content container found in HTML")
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	return &core.Content{
		HTML:     fragment,
		Title:    title,
		Language: strings.TrimSpace(lang),
	}, nil
}
