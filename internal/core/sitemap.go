package core

import (
	"encoding/xml"
	"strings"
	"time"
)

const (
	SitemapNamespace  = "http://www.sitemaps.org/schemas/sitemap/0.9"
	SitemapChangeFreq = "weekly"
	SitemapPriority   = "0.6"
	LastModLayout     = "2006-01-02T15:04:05Z"
)

func RenderRobots(baseURL string) string {
	return "User-agent: *\nAllow: /\nSitemap: " + SitemapURL(baseURL) + "\n"
}

// RenderSitemap emits one <url> entry per url, in order, all sharing ts.
func RenderSitemap(urls []string, ts time.Time) string {
	lastmod := ts.UTC().Format(LastModLayout)

	lines := make([]string, 0, 3+len(urls)*6)
	lines = append(lines,
		xml.Header[:len(xml.Header)-1],
		`<urlset xmlns="`+SitemapNamespace+`">`,
	)
	for _, u := range urls {
		lines = append(lines,
			"<url>",
			"<loc>"+escapeXML(u)+"</loc>",
			"<lastmod>"+lastmod+"</lastmod>",
			"<changefreq>"+SitemapChangeFreq+"</changefreq>",
			"<priority>"+SitemapPriority+"</priority>",
			"</url>",
		)
	}
	lines = append(lines, "</urlset>")
	return strings.Join(lines, "\n")
}

// SitemapURLs puts the index first, followed by the page URLs in order.
func SitemapURLs(baseURL string, pages []GeneratedPage) []string {
	urls := make([]string, 0, len(pages)+1)
	urls = append(urls, IndexURL(baseURL))
	for _, p := range pages {
		urls = append(urls, p.URL)
	}
	return urls
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
