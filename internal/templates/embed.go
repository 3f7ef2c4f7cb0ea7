package templates

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed shell/calculator.html
var CalculatorShell string

//go:embed shell/index.html
var IndexShell string

//go:embed all:starter
var starterFS embed.FS

var validTemplates = []string{"starter"}

var ErrInvalidTemplate = errors.New("invalid template name")

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "starter":
		return fs.Sub(starterFS, "starter")
	default:
		return nil, ErrInvalidTemplate
	}
}

func ValidTemplates() []string {
	return append([]string(nil), validTemplates...)
}

type TemplateData struct {
	Name    string
	BaseURL string
}

// ProcessFilename drops a trailing .tmpl and reports whether it was there.
func ProcessFilename(filename string) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	r := strings.NewReplacer(
		"{{.Name}}", jsonString(data.Name),
		"{{.BaseURL}}", jsonString(data.BaseURL),
	)
	return []byte(r.Replace(string(content)))
}

// DeriveSiteName turns a project directory into a default site name.
func DeriveSiteName(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "My Calculators"
	}
	return base
}

// jsonString escapes s for use between double quotes in a JSON document.
func jsonString(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted[1 : len(quoted)-1])
}
