// Package crawl — URL filtering rules.
package crawl

import (
	"net/url"
	"path"
	"strings"
)

// Non-text resources that carry no countable page text.
var staticExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".svg": {}, ".webp": {}, ".ico": {}, ".bmp": {}, ".avif": {},
	".css": {}, ".js": {}, ".mjs": {}, ".map": {}, ".json": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".mp4": {}, ".webm": {}, ".mp3": {}, ".wav": {}, ".ogg": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".tgz": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {},
	".xml": {}, ".rss": {},
}

// IsSameDomain reports whether rawURL is an absolute URL on domain.
// Hosts compare case-insensitively and a "www." prefix is ignored.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	return canonicalHost(parsed.Host) == canonicalHost(domain)
}

func canonicalHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// IsStaticAsset reports whether a URL points to a non-page resource.
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := staticExtensions[strings.ToLower(path.Ext(parsed.Path))]
	return ok
}

// NormalizeURL canonicalizes a URL for deduplication: lowercase scheme and
// host, no fragment, and no trailing slash except for the root path.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.RawFragment = ""
	if parsed.Path == "" {
		parsed.Path = "/"
	} else if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
		parsed.RawPath = ""
	}

	return parsed.String()
}
