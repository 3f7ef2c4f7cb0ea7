package core

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/3-lines-studio/calcsite/internal/templates"
)

// RenderedPage is one calculator page ready to be written.
type RenderedPage struct {
	FileName string
	URL      string
	HTML     string
}

// RenderPage renders a calculator page into the calculator shell. site is
// expected to be normalized. now only contributes its UTC year.
func RenderPage(page PageDefinition, site SiteSettings, now time.Time) (RenderedPage, error) {
	formFields, varDecls := RenderFields(page.Fields)

	intro, err := renderIntro(page)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("failed to render intro for %q: %w", page.Slug, err)
	}
	faq, err := renderFAQ(page)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("failed to render faq for %q: %w", page.Slug, err)
	}

	h1 := page.H1
	if h1 == "" {
		h1 = page.Title
	}
	disclaimer := page.Disclaimer
	if disclaimer == "" {
		disclaimer = site.Disclaimer
	}

	canonical := CanonicalURL(site.BaseURL, page.Slug)

	r := strings.NewReplacer(
		"{{.Lang}}", html.EscapeString(site.Lang),
		"{{.Title}}", html.EscapeString(page.Title),
		"{{.Canonical}}", canonical,
		"{{.Meta}}", html.EscapeString(page.Meta),
		"{{.Locale}}", jsStringEscaper.Replace(site.Locale),
		"{{.VarDecls}}", varDecls,
		"{{.JSCalc}}", page.JSCalc,
		"{{.SiteName}}", html.EscapeString(site.Name),
		"{{.H1}}", html.EscapeString(h1),
		"{{.Intro}}", intro,
		"{{.FormFields}}", formFields,
		"{{.AffiliateURL}}", page.Affiliate.URL,
		"{{.AffiliateText}}", html.EscapeString(page.Affiliate.Text),
		"{{.Disclaimer}}", html.EscapeString(disclaimer),
		"{{.FAQHeading}}", html.EscapeString(site.FAQHeading),
		"{{.FAQ}}", faq,
		"{{.Year}}", strconv.Itoa(now.UTC().Year()),
	)

	return RenderedPage{
		FileName: PageFileName(page.Slug),
		URL:      canonical,
		HTML:     r.Replace(templates.CalculatorShell),
	}, nil
}

// RenderFields returns the form markup and the variable declaration lines
// for fields, both in declaration order and joined by newlines.
func RenderFields(fields []Field) (formHTML string, varDecls string) {
	markup := make([]string, 0, len(fields))
	decls := make([]string, 0, len(fields))

	for _, f := range fields {
		markup = append(markup, renderField(f))
		decls = append(decls, VarDecl(f.ID))
	}

	return strings.Join(markup, "\n"), strings.Join(decls, "\n")
}

// VarDecl reads the element's current value as a float, falling back to 0
// for empty or unparseable input.
func VarDecl(id string) string {
	return fmt.Sprintf("var %s = parseFloat(document.getElementById('%s').value) || 0;", id, id)
}

func renderField(f Field) string {
	label := f.Label
	if label == "" {
		label = f.ID
	}
	fieldType := f.Type
	if fieldType == "" {
		fieldType = FieldTypeNumber
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<label for="%s">%s</label>`, f.ID, html.EscapeString(label))

	if fieldType == FieldTypeSelect {
		fmt.Fprintf(&b, `<select id="%s">`, f.ID)
		for _, o := range f.Options {
			value := html.EscapeString(o.Value.String())
			text := value
			if o.Label != "" {
				text = html.EscapeString(o.Label.String())
			}
			fmt.Fprintf(&b, `<option value="%s">%s</option>`, value, text)
		}
		b.WriteString("</select>")
		return b.String()
	}

	fmt.Fprintf(&b, `<input id="%s" type="%s" value="%s">`, f.ID, html.EscapeString(fieldType), html.EscapeString(f.Value.String()))
	return b.String()
}

func renderIntro(page PageDefinition) (string, error) {
	if page.IntroMD != "" {
		return RenderMarkdown(page.IntroMD)
	}
	return `<p class="small">` + html.EscapeString(page.Intro) + `</p>`, nil
}

func renderFAQ(page PageDefinition) (string, error) {
	if page.FAQHTML != "" || page.FAQMD == "" {
		return page.FAQHTML, nil
	}
	return RenderMarkdown(page.FAQMD)
}

var jsStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "<", `\x3c`, "\n", `\n`)
