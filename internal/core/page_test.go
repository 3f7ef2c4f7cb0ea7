package core

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse html: %v", err)
	}
	return doc
}

func bmiPage() PageDefinition {
	return PageDefinition{
		Slug:   "bmi",
		Title:  "BMI",
		Fields: []Field{{ID: "w", Type: "number", Value: "70"}},
		JSCalc: "document.getElementById('result').innerText=w;",
	}
}

func TestRenderPage_Example(t *testing.T) {
	site := SiteSettings{Name: "Calc", BaseURL: "https://x.test"}.Normalize()

	got, err := RenderPage(bmiPage(), site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	if got.FileName != "bmi.html" {
		t.Errorf("FileName = %q, want bmi.html", got.FileName)
	}
	if got.URL != "https://x.test/bmi.html" {
		t.Errorf("URL = %q, want https://x.test/bmi.html", got.URL)
	}
	if !strings.HasPrefix(got.HTML, "<!doctype html>") {
		t.Errorf("HTML does not start with a doctype")
	}

	doc := parseHTML(t, got.HTML)

	if href, _ := doc.Find(`link[rel="canonical"]`).Attr("href"); href != "https://x.test/bmi.html" {
		t.Errorf("canonical href = %q", href)
	}

	input := doc.Find("form input#w")
	if input.Length() != 1 {
		t.Fatalf("expected one input#w inside the form, got %d", input.Length())
	}
	if v := input.AttrOr("value", ""); v != "70" {
		t.Errorf("input value = %q, want 70", v)
	}
	if typ := input.AttrOr("type", ""); typ != "number" {
		t.Errorf("input type = %q, want number", typ)
	}
	if doc.Find(`label[for="w"]`).Length() != 1 {
		t.Error("expected a label bound to w")
	}
	if doc.Find("div#result").Length() != 1 {
		t.Error("expected the result region")
	}
	if doc.Find("script[src], link[rel=stylesheet]").Length() != 0 {
		t.Error("page must not reference external scripts or styles")
	}

	script := doc.Find("script").Text()
	if !strings.Contains(script, VarDecl("w")+"\n"+bmiPage().JSCalc) {
		t.Errorf("script does not contain the declarations followed by the snippet:\n%s", script)
	}
	if !strings.Contains(script, "try { calc(); } catch(e) { console.error(e); }") {
		t.Error("calc() is not wrapped in a try/catch")
	}
	if !strings.Contains(script, "document.addEventListener('DOMContentLoaded', runCalc)") {
		t.Error("calc() does not run after DOMContentLoaded")
	}
	if oninput := doc.Find("form").AttrOr("oninput", ""); oninput != "runCalc()" {
		t.Errorf("form oninput = %q, want runCalc()", oninput)
	}

	if footer := doc.Find("footer").Text(); !strings.Contains(footer, "© 2025 Calc") {
		t.Errorf("footer = %q", footer)
	}
}

func TestRenderPage_EscapesText(t *testing.T) {
	payload := `<b>"Tom" & 'Jerry'</b>`
	site := SiteSettings{Name: payload, BaseURL: "https://x.test"}.Normalize()
	page := PageDefinition{
		Slug:       "escape",
		Title:      payload,
		H1:         payload,
		Intro:      payload,
		Meta:       payload,
		Disclaimer: payload,
		Fields: []Field{
			{ID: "a", Label: payload, Type: "text", Value: Scalar(payload)},
			{ID: "b", Label: payload, Type: "select", Options: []Option{{Value: Scalar(payload), Label: Scalar(payload)}}},
		},
		Affiliate: Affiliate{URL: "https://aff.test/?a=1", Text: payload},
	}

	got, err := RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	if strings.Contains(got.HTML, payload) {
		t.Fatal("unescaped payload found in output")
	}
	for _, raw := range []string{`"Tom"`, "<b>", "& 'Jerry'"} {
		if strings.Contains(got.HTML, raw) {
			t.Errorf("output contains unescaped %q", raw)
		}
	}

	doc := parseHTML(t, got.HTML)
	checks := map[string]string{
		"title":            doc.Find("title").Text(),
		"h1":               doc.Find("h1").Text(),
		"intro":            doc.Find("main > p.small").First().Text(),
		"meta":             doc.Find(`meta[name="description"]`).AttrOr("content", ""),
		"header site name": doc.Find("header strong").Text(),
		"label":            doc.Find(`label[for="a"]`).Text(),
		"input value":      doc.Find("input#a").AttrOr("value", ""),
		"option value":     doc.Find("select#b option").AttrOr("value", ""),
		"option label":     doc.Find("select#b option").Text(),
		"affiliate text":   doc.Find("a.cta").Text(),
		"disclaimer":       doc.Find(".card > p.small").Text(),
	}
	for name, text := range checks {
		if text != payload {
			t.Errorf("%s = %q, want %q", name, text, payload)
		}
	}
}

func TestRenderPage_VerbatimFragments(t *testing.T) {
	site := SiteSettings{BaseURL: "https://x.test"}.Normalize()
	page := PageDefinition{
		Slug:      "raw",
		Title:     "Raw",
		FAQHTML:   `<details><summary>Why?</summary><p>Because &amp; so.</p></details>`,
		Affiliate: Affiliate{URL: "https://aff.test/?a=1&b=2", Text: "Go"},
		JSCalc:    `if (a < b && b > 0) { document.getElementById('result').innerHTML = "<b>ok</b>"; }`,
	}

	got, err := RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	for _, raw := range []string{page.FAQHTML, page.JSCalc, `href="https://aff.test/?a=1&b=2"`} {
		if !strings.Contains(got.HTML, raw) {
			t.Errorf("expected %q verbatim in output", raw)
		}
	}

	doc := parseHTML(t, got.HTML)
	if doc.Find("details summary").Text() != "Why?" {
		t.Error("faq fragment was not emitted as markup")
	}
}

func TestRenderPage_ZeroFields(t *testing.T) {
	site := SiteSettings{BaseURL: "https://x.test"}.Normalize()
	page := PageDefinition{Slug: "empty", Title: "Empty"}

	got, err := RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	doc := parseHTML(t, got.HTML)
	if doc.Find("form").Length() != 1 {
		t.Fatal("expected a form")
	}
	if n := doc.Find("form input, form select, form label").Length(); n != 0 {
		t.Errorf("expected an empty form, found %d controls", n)
	}
	if !strings.Contains(got.HTML, "function calc(){\n\n\n}") {
		t.Error("expected an empty calc() body")
	}
	if !strings.Contains(got.HTML, "document.addEventListener('DOMContentLoaded', runCalc)") {
		t.Error("calc() is not invoked")
	}
}

func TestRenderPage_Defaults(t *testing.T) {
	site := SiteSettings{BaseURL: "https://x.test/"}.Normalize()
	page := PageDefinition{
		Slug:   "defaults",
		Title:  "Loan",
		Fields: []Field{{ID: "rate"}},
	}

	got, err := RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	doc := parseHTML(t, got.HTML)

	if got.URL != "https://x.test/defaults.html" {
		t.Errorf("URL = %q, trailing slash not trimmed", got.URL)
	}
	if h1 := doc.Find("h1").Text(); h1 != "Loan" {
		t.Errorf("h1 = %q, want title fallback", h1)
	}
	if label := doc.Find(`label[for="rate"]`).Text(); label != "rate" {
		t.Errorf("label = %q, want id fallback", label)
	}
	if typ := doc.Find("input#rate").AttrOr("type", ""); typ != FieldTypeNumber {
		t.Errorf("type = %q, want number", typ)
	}
	if d := doc.Find(".card > p.small").Text(); d != DefaultDisclaimer {
		t.Errorf("disclaimer = %q, want default", d)
	}
	if name := doc.Find("header strong").Text(); name != DefaultSiteName {
		t.Errorf("site name = %q, want default", name)
	}
	if lang := doc.Find("html").AttrOr("lang", ""); lang != DefaultLang {
		t.Errorf("lang = %q", lang)
	}
	if !strings.Contains(got.HTML, "Intl.NumberFormat('vi-VN')") {
		t.Error("fmt() helper does not use the default locale")
	}
}

func TestRenderPage_SelectOptions(t *testing.T) {
	site := SiteSettings{BaseURL: "https://x.test"}.Normalize()
	page := PageDefinition{
		Slug:  "select",
		Title: "Select",
		Fields: []Field{{
			ID:   "term",
			Type: FieldTypeSelect,
			Options: []Option{
				{Value: "12", Label: "One year"},
				{Value: "24"},
			},
		}},
	}

	got, err := RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	doc := parseHTML(t, got.HTML)

	options := doc.Find("select#term option")
	if options.Length() != 2 {
		t.Fatalf("expected 2 options, got %d", options.Length())
	}
	want := [][2]string{{"12", "One year"}, {"24", "24"}}
	options.Each(func(i int, s *goquery.Selection) {
		if v := s.AttrOr("value", ""); v != want[i][0] {
			t.Errorf("option %d value = %q, want %q", i, v, want[i][0])
		}
		if s.Text() != want[i][1] {
			t.Errorf("option %d label = %q, want %q", i, s.Text(), want[i][1])
		}
	})
	if doc.Find("input#term").Length() != 0 {
		t.Error("select field must not also render an input")
	}
	if !strings.Contains(got.HTML, VarDecl("term")) {
		t.Error("select field has no variable declaration")
	}
}

func TestRenderPage_Markdown(t *testing.T) {
	site := SiteSettings{BaseURL: "https://x.test"}.Normalize()
	page := PageDefinition{
		Slug:    "md",
		Title:   "Markdown",
		IntroMD: "Uses **bold** intro.",
		FAQMD:   "## Question\n\nAnswer with `code`.",
	}

	got, err := RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	doc := parseHTML(t, got.HTML)

	if doc.Find("main > p strong").Text() != "bold" {
		t.Error("intro_md was not rendered")
	}
	if doc.Find(".card h2").Last().Text() != "Question" {
		t.Error("faq_md was not rendered")
	}
	if doc.Find(".card code").Text() != "code" {
		t.Error("inline code missing from faq")
	}

	page.FAQHTML = "<p>hand written</p>"
	got, err = RenderPage(page, site, fixedNow)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if strings.Contains(got.HTML, "<h2>Question</h2>") {
		t.Error("faq_html must take precedence over faq_md")
	}
}

func TestRenderPage_YearIsUTC(t *testing.T) {
	site := SiteSettings{BaseURL: "https://x.test"}.Normalize()
	local := time.Date(2024, 12, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))

	got, err := RenderPage(bmiPage(), site, local)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if !strings.Contains(got.HTML, "© 2025 ") {
		t.Error("expected the UTC year 2025")
	}
}

func TestRenderPage_Deterministic(t *testing.T) {
	site := SiteSettings{Name: "Calc", BaseURL: "https://x.test"}.Normalize()

	first, err := RenderPage(bmiPage(), site, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderPage(bmiPage(), site, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if first.HTML != second.HTML {
		t.Error("rendering the same page twice produced different output")
	}
}

func TestRenderFields(t *testing.T) {
	form, decls := RenderFields([]Field{
		{ID: "a", Label: "A", Value: "1"},
		{ID: "b", Type: "range", Value: "2"},
	})

	wantForm := `<label for="a">A</label><input id="a" type="number" value="1">` + "\n" +
		`<label for="b">b</label><input id="b" type="range" value="2">`
	if form != wantForm {
		t.Errorf("form =\n%s\nwant\n%s", form, wantForm)
	}

	wantDecls := "var a = parseFloat(document.getElementById('a').value) || 0;\n" +
		"var b = parseFloat(document.getElementById('b').value) || 0;"
	if decls != wantDecls {
		t.Errorf("decls =\n%s\nwant\n%s", decls, wantDecls)
	}
}
