package usecase

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/3-lines-studio/calcsite/internal/adapters/content"
	"github.com/3-lines-studio/calcsite/internal/core"
)

type DoctorInput struct {
	ContentDir string
}

type Finding struct {
	Page    string
	Message string
}

type DoctorOutput struct {
	Site     core.SiteSettings
	Pages    int
	Problems []Finding
	Warnings []Finding
	Error    error
}

func (o DoctorOutput) Healthy() bool {
	return o.Error == nil && len(o.Problems) == 0
}

// DoctorService checks content without writing any output. Unlike a build,
// it keeps going after the first problem so every issue is reported at once.
type DoctorService struct {
	fs     FileSystem
	cli    CLIOutput
	logger *slog.Logger
}

func NewDoctorService(fs FileSystem, cli CLIOutput, logger *slog.Logger) *DoctorService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DoctorService{fs: fs, cli: cli, logger: logger}
}

func (s *DoctorService) CheckContent(input DoctorInput) DoctorOutput {
	s.cli.PrintHeader("Calcsite Doctor")
	s.cli.PrintStep("Checking %s", input.ContentDir)

	loader := content.NewLoader(s.fs, input.ContentDir, s.logger)
	var out DoctorOutput

	for _, name := range []string{content.SiteDocument, content.PagesDocument} {
		if path := loader.Resolve(name); !s.fs.FileExists(path) {
			out.Warnings = append(out.Warnings, Finding{Message: fmt.Sprintf("%s not found, defaults will be used", path)})
		}
	}

	site, err := loader.LoadSite()
	if err != nil {
		out.Error = err
		s.cli.PrintError("%v", err)
		return out
	}
	out.Site = site
	if site.BaseURL == "" {
		out.Warnings = append(out.Warnings, Finding{Message: "base_url is empty, canonical URLs will be relative to /"})
	}

	pages, err := loader.LoadPages()
	if err != nil {
		out.Error = err
		s.cli.PrintError("%v", err)
		return out
	}
	out.Pages = len(pages)

	for i, p := range pages {
		name := p.Slug
		if name == "" {
			name = fmt.Sprintf("page %d", i)
		}
		if err := core.ValidateSlug(p.Slug); err != nil {
			out.Problems = append(out.Problems, Finding{Page: name, Message: err.Error()})
		}
		seen := make(map[string]bool, len(p.Fields))
		for _, f := range p.Fields {
			if err := core.ValidateFieldID(f.ID); err != nil {
				out.Problems = append(out.Problems, Finding{Page: name, Message: err.Error()})
			}
			if seen[f.ID] {
				out.Problems = append(out.Problems, Finding{Page: name, Message: fmt.Sprintf("field %q is declared twice", f.ID)})
			}
			seen[f.ID] = true
			if f.Type == core.FieldTypeSelect && len(f.Options) == 0 {
				out.Warnings = append(out.Warnings, Finding{Page: name, Message: fmt.Sprintf("select field %q has no options", f.ID)})
			}
		}
		if len(p.Fields) == 0 {
			out.Warnings = append(out.Warnings, Finding{Page: name, Message: "page has no fields"})
		}
		if strings.TrimSpace(p.JSCalc) == "" {
			out.Warnings = append(out.Warnings, Finding{Page: name, Message: "js_calc is empty, the result area will stay blank"})
		}
		if p.Title == "" {
			out.Warnings = append(out.Warnings, Finding{Page: name, Message: "title is empty"})
		}
	}

	for _, slug := range core.DuplicateSlugs(pages) {
		out.Problems = append(out.Problems, Finding{Page: slug, Message: "slug is used by more than one page"})
	}

	for _, w := range out.Warnings {
		s.cli.PrintWarning("%s", formatFinding(w))
	}
	for _, p := range out.Problems {
		s.cli.PrintError("%s", formatFinding(p))
	}
	if out.Healthy() {
		s.cli.PrintSuccess("%d pages OK", out.Pages)
	}
	return out
}

func formatFinding(f Finding) string {
	if f.Page == "" {
		return f.Message
	}
	return f.Page + ": " + f.Message
}
