package core

import (
	"strings"
	"unicode"
)

const (
	IndexFileName   = "index.html"
	RobotsFileName  = "robots.txt"
	SitemapFileName = "sitemap.xml"
)

func NormalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

func PageFileName(slug string) string {
	return slug + ".html"
}

func CanonicalURL(baseURL, slug string) string {
	return baseURL + "/" + PageFileName(slug)
}

func IndexURL(baseURL string) string {
	return baseURL + "/" + IndexFileName
}

func SitemapURL(baseURL string) string {
	return baseURL + "/" + SitemapFileName
}

// LabelForURL derives a link label from the filename stem of url:
// "https://x.test/loan-payment.html" becomes "Loan Payment".
func LabelForURL(url string) string {
	stem := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		stem = url[i+1:]
	}
	stem = strings.ReplaceAll(stem, ".html", "")
	stem = strings.ReplaceAll(stem, "-", " ")
	return TitleCase(stem)
}

// TitleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest, so "2nd mortgage" becomes "2Nd Mortgage".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToTitle(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
