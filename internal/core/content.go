package core

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSiteName         = "Site"
	DefaultLang             = "vi"
	DefaultLocale           = "vi-VN"
	DefaultIndexHeading     = "Danh sách công cụ"
	DefaultIndexDescription = "Bộ công cụ tính nhanh — miễn phí"
	DefaultFAQHeading       = "Giải thích & Câu hỏi thường gặp"
	DefaultDisclaimer       = "Kết quả chỉ mang tính tham khảo."

	FieldTypeNumber = "number"
	FieldTypeSelect = "select"
)

// SiteSettings holds the site-wide values loaded once per build. Only Name
// and BaseURL are required by the renderers; the rest are static text with
// defaults filled in by Normalize.
type SiteSettings struct {
	Name             string `json:"name" yaml:"name"`
	BaseURL          string `json:"base_url" yaml:"base_url"`
	Lang             string `json:"lang,omitempty" yaml:"lang,omitempty"`
	Locale           string `json:"locale,omitempty" yaml:"locale,omitempty"`
	IndexHeading     string `json:"index_heading,omitempty" yaml:"index_heading,omitempty"`
	IndexDescription string `json:"index_description,omitempty" yaml:"index_description,omitempty"`
	FAQHeading       string `json:"faq_heading,omitempty" yaml:"faq_heading,omitempty"`
	Disclaimer       string `json:"disclaimer,omitempty" yaml:"disclaimer,omitempty"`
}

// Normalize returns a copy with defaults applied and the base URL stripped
// of trailing slashes.
func (s SiteSettings) Normalize() SiteSettings {
	s.BaseURL = NormalizeBaseURL(s.BaseURL)
	if s.Name == "" {
		s.Name = DefaultSiteName
	}
	if s.Lang == "" {
		s.Lang = DefaultLang
	}
	if s.Locale == "" {
		s.Locale = DefaultLocale
	}
	if s.IndexHeading == "" {
		s.IndexHeading = DefaultIndexHeading
	}
	if s.IndexDescription == "" {
		s.IndexDescription = DefaultIndexDescription
	}
	if s.FAQHeading == "" {
		s.FAQHeading = DefaultFAQHeading
	}
	if s.Disclaimer == "" {
		s.Disclaimer = DefaultDisclaimer
	}
	return s
}

type Affiliate struct {
	URL  string `json:"url" yaml:"url"`
	Text string `json:"text" yaml:"text"`
}

type Option struct {
	Value Scalar `json:"value" yaml:"value"`
	Label Scalar `json:"label,omitempty" yaml:"label,omitempty"`
}

type Field struct {
	ID      string   `json:"id" yaml:"id"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Value   Scalar   `json:"value,omitempty" yaml:"value,omitempty"`
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// PageDefinition describes one calculator page. FAQHTML and JSCalc are
// trusted and emitted verbatim.
type PageDefinition struct {
	Slug       string    `json:"slug" yaml:"slug"`
	Title      string    `json:"title" yaml:"title"`
	H1         string    `json:"h1,omitempty" yaml:"h1,omitempty"`
	Intro      string    `json:"intro,omitempty" yaml:"intro,omitempty"`
	IntroMD    string    `json:"intro_md,omitempty" yaml:"intro_md,omitempty"`
	Meta       string    `json:"meta,omitempty" yaml:"meta,omitempty"`
	Disclaimer string    `json:"disclaimer,omitempty" yaml:"disclaimer,omitempty"`
	FAQHTML    string    `json:"faq_html,omitempty" yaml:"faq_html,omitempty"`
	FAQMD      string    `json:"faq_md,omitempty" yaml:"faq_md,omitempty"`
	Fields     []Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Affiliate  Affiliate `json:"affiliate" yaml:"affiliate"`
	JSCalc     string    `json:"js_calc" yaml:"js_calc"`
}

// GeneratedPage is the record left behind by rendering one page.
type GeneratedPage struct {
	URL string
}

// Scalar is a content value that may be written as a string, number or
// boolean. It keeps the literal text; null decodes to the empty string.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return &json.UnmarshalTypeError{Value: "object or array", Type: scalarType}
	}
	*s = Scalar(data)
	return nil
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{"line " + strconv.Itoa(node.Line) + ": expected a scalar value"}}
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Scalar(node.Value)
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

var scalarType = reflect.TypeOf(Scalar(""))
