package core

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/3-lines-studio/calcsite/internal/templates"
)

// RenderIndex lists one link per generated page URL, in the order given.
func RenderIndex(urls []string, site SiteSettings, now time.Time) string {
	links := make([]string, 0, len(urls))
	for _, u := range urls {
		links = append(links, fmt.Sprintf(`<li><a href="%s">%s</a></li>`, html.EscapeString(u), html.EscapeString(LabelForURL(u))))
	}

	r := strings.NewReplacer(
		"{{.Lang}}", html.EscapeString(site.Lang),
		"{{.SiteName}}", html.EscapeString(site.Name),
		"{{.Canonical}}", IndexURL(site.BaseURL),
		"{{.Description}}", html.EscapeString(site.IndexDescription),
		"{{.Heading}}", html.EscapeString(site.IndexHeading),
		"{{.Links}}", strings.Join(links, "\n"),
		"{{.Year}}", strconv.Itoa(now.UTC().Year()),
	)
	return r.Replace(templates.IndexShell)
}
