package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagestat/core/fetch"
)

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"https://Example.com":            "https://example.com/",
		"https://example.com/docs/":      "https://example.com/docs",
		"https://example.com/docs#intro": "https://example.com/docs",
		"https://example.com/":           "https://example.com/",
		"https://example.com/a?b=1#frag": "https://example.com/a?b=1",
		"HTTPS://EXAMPLE.COM/CaseKept/":  "https://example.com/CaseKept",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeURL(in), in)
	}
}

func TestRules(t *testing.T) {
	assert.True(t, IsSameDomain("https://www.example.com/a", "example.com"))
	assert.True(t, IsSameDomain("https://EXAMPLE.com/a", "example.com"))
	assert.False(t, IsSameDomain("https://other.com/a", "example.com"))
	assert.False(t, IsSameDomain("/relative", "example.com"))

	assert.True(t, IsStaticAsset("https://example.com/logo.PNG"))
	assert.True(t, IsStaticAsset("https://example.com/feed.xml"))
	assert.False(t, IsStaticAsset("https://example.com/docs/intro"))
	assert.False(t, IsStaticAsset("https://example.com/page.html"))
}

func TestQueue(t *testing.T) {
	q := NewQueue(3)
	assert.True(t, q.Add("a"))
	assert.False(t, q.Add("a"))
	assert.True(t, q.Add("b"))
	assert.True(t, q.Add("c"))
	assert.True(t, q.Full())
	assert.False(t, q.Add("d"))

	var got []string
	for q.HasNext() {
		got = append(got, q.Next())
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3, q.Len())
}

func TestResolveURL(t *testing.T) {
	base, _ := url.Parse("https://example.com/docs/intro")
	tests := map[string]string{
		"guide":                 "https://example.com/docs/guide",
		"/about#team":           "https://example.com/about",
		"https://other.com/x":   "https://other.com/x",
		"#top":                  "",
		"mailto:me@example.com": "",
		"javascript:void(0)":    "",
		"tel:+100":              "",
	}
	for href, want := range tests {
		assert.Equal(t, want, resolveURL(href, base), href)
	}
}

func TestDiscoverAllFromSitemap(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%[1]s/pages.xml</loc></sitemap>
  <sitemap><loc>https://elsewhere.com/sitemap.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
	})
	mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/docs/</loc></url>
  <url><loc>%[1]s/blog</loc></url>
  <url><loc>%[1]s/logo.png</loc></url>
  <url><loc>https://elsewhere.com/page</loc></url>
</urlset>`, srv.URL)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	urls, err := DiscoverAll(context.Background(), srv.URL, fetch.New(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/", srv.URL + "/docs", srv.URL + "/blog"}, urls)
}

func TestDiscoverAllFromLinks(t *testing.T) {
	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, body)
		}
	}
	mux.HandleFunc("/sitemap.xml", http.NotFound)
	mux.HandleFunc("/{$}", page(`<a href="/a">A</a><a href="b/">B</a><a href="/style.css">css</a><a href="mailto:x@y.z">mail</a>`))
	mux.HandleFunc("/a", page(`<a href="/">home</a><a href="/c#section">C</a>`))
	mux.HandleFunc("/b", page(`<p>leaf</p>`))
	mux.HandleFunc("/c", page(`<a href="https://elsewhere.com/">out</a>`))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	urls, err := DiscoverAll(context.Background(), srv.URL+"/", fetch.New(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/", srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}, urls)

	urls, err = DiscoverAll(context.Background(), srv.URL+"/", fetch.New(), Options{MaxPages: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/", srv.URL + "/a"}, urls)
}

func TestDiscoverAllBadURL(t *testing.T) {
	_, err := DiscoverAll(context.Background(), "not a url", fetch.New(), Options{})
	assert.Error(t, err)
}
