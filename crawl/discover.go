// Package crawl provides same-domain page discovery for --all mode.
// It discovers pages via sitemap.xml (following sitemap indexes) and falls
// back to a breadth-first walk over <a href> links. Discovery only lists
// URLs; fetching them for analysis is the pipeline's job.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/pagestat/core"
)

// DefaultMaxPages bounds a crawl when Options.MaxPages is unset.
const DefaultMaxPages = 100

// maxSitemapDepth limits how many levels of sitemap indexes are followed.
const maxSitemapDepth = 2

var anchors = cascadia.MustCompile("a[href]")

// Options tunes a discovery run.
type Options struct {
	MaxPages int
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// sitemapDoc decodes both <urlset> and <sitemapindex> roots.
type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

// DiscoverAll finds the same-domain URLs to analyze starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
// The result never exceeds opts.MaxPages and always contains baseURL.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q has no host", baseURL)
	}
	domain := parsed.Host
	start := NormalizeURL(baseURL)

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	q := NewQueue(opts.MaxPages)
	q.Add(start)
	if err := discoverFromSitemap(ctx, fetcher, sitemapURL, domain, q, 0); err != nil {
		opts.Logger.Debug("sitemap unavailable", zap.String("url", sitemapURL), zap.Error(err))
	}
	if q.Len() > 1 {
		opts.Logger.Info("discovered pages from sitemap", zap.String("url", sitemapURL), zap.Int("pages", q.Len()))
		return q.All(), nil
	}

	urls, err := discoverFromLinks(ctx, start, domain, fetcher, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("discovered pages from links", zap.String("start", start), zap.Int("pages", len(urls)))
	return urls, nil
}

// discoverFromSitemap fetches a sitemap and adds its same-domain page URLs to q.
func discoverFromSitemap(ctx context.Context, fetcher core.Fetcher, sitemapURL, domain string, q *Queue, depth int) error {
	result, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return err
	}
	if result.HTML == nil {
		return fmt.Errorf("sitemap %s is empty", sitemapURL)
	}

	var doc sitemapDoc
	if err := xml.Unmarshal([]byte(*result.HTML), &doc); err != nil {
		return fmt.Errorf("decoding sitemap %s: %w", sitemapURL, err)
	}

	for _, u := range doc.URLs {
		loc := strings.TrimSpace(u.Loc)
		if IsSameDomain(loc, domain) && !IsStaticAsset(loc) {
			q.Add(NormalizeURL(loc))
		}
	}

	if depth >= maxSitemapDepth {
		return nil
	}
	for _, s := range doc.Sitemaps {
		if q.Full() {
			break
		}
		loc := strings.TrimSpace(s.Loc)
		if !IsSameDomain(loc, domain) {
			continue
		}
		// A broken child sitemap should not discard what the others list.
		_ = discoverFromSitemap(ctx, fetcher, loc, domain, q, depth+1)
	}
	return nil
}

// discoverFromLinks performs BFS crawling to find internal links.
func discoverFromLinks(ctx context.Context, start, domain string, fetcher core.Fetcher, opts Options) ([]string, error) {
	q := NewQueue(opts.MaxPages)
	q.Add(start)

	for q.HasNext() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := q.Next()

		result, err := fetcher.Fetch(ctx, current)
		if err != nil {
			opts.Logger.Debug("skipping page", zap.String("url", current), zap.Error(err))
			continue
		}
		if result.HTML == nil {
			continue
		}

		links, err := extractLinks(*result.HTML, current)
		if err != nil {
			opts.Logger.Debug("skipping links", zap.String("url", current), zap.Error(err))
			continue
		}
		for _, link := range links {
			if IsSameDomain(link, domain) && !IsStaticAsset(link) {
				q.Add(NormalizeURL(link))
			}
		}
	}

	return q.All(), nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	// <base href> overrides the document URL for relative links.
	if href, ok := doc.Find("head base[href]").Attr("href"); ok {
		if b, err := url.Parse(href); err == nil {
			base = base.ResolveReference(b)
		}
	}

	var links []string
	doc.FindMatcher(anchors).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveURL(strings.TrimSpace(href), base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
// Non-HTTP schemes and in-page anchors resolve to "".
func resolveURL(href string, base *url.URL) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
