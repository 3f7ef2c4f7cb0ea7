package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/3-lines-studio/calcsite/internal/adapters/cli"
	"github.com/3-lines-studio/calcsite/internal/adapters/content"
	"github.com/3-lines-studio/calcsite/internal/adapters/fs"
	"github.com/3-lines-studio/calcsite/internal/core"
)

const tracerName = "github.com/3-lines-studio/calcsite/internal/usecase"

type BuildInput struct {
	ContentDir string
	OutputDir  string
	// BaseURL replaces the site document's base_url when set.
	BaseURL             string
	AllowDuplicateSlugs bool
	Verbose             bool
}

type BuildOutput struct {
	Success  bool
	Site     core.SiteSettings
	Pages    []core.GeneratedPage
	Files    []string
	Warnings []string
	Error    error
}

type BuildService struct {
	fs     FileSystem
	cli    CLIOutput
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

type BuildOption func(*BuildService)

// WithClock fixes the build start time, which ends up in every lastmod and
// copyright year.
func WithClock(now func() time.Time) BuildOption {
	return func(s *BuildService) {
		s.now = now
	}
}

func WithTracer(tracer trace.Tracer) BuildOption {
	return func(s *BuildService) {
		s.tracer = tracer
	}
}

func NewBuildService(fs FileSystem, cli CLIOutput, logger *slog.Logger, opts ...BuildOption) *BuildService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &BuildService{
		fs:     fs,
		cli:    cli,
		logger: logger,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type buildState struct {
	input   BuildInput
	now     time.Time
	report  *cli.BuildReport
	area    *fs.OutputArea
	site    core.SiteSettings
	pages   []core.PageDefinition
	written []core.GeneratedPage
}

func (st *buildState) output(err error) BuildOutput {
	out := BuildOutput{
		Success: err == nil,
		Site:    st.site,
		Pages:   st.written,
		Error:   err,
	}
	for _, f := range st.report.Files() {
		out.Files = append(out.Files, f.Path)
	}
	for _, w := range st.report.Warnings() {
		out.Warnings = append(out.Warnings, w.Page+": "+w.Message)
	}
	return out
}

// BuildSite runs one full build: load content, reset the output area,
// render every page in order, then the index, robots.txt and sitemap.xml.
// The first error stops the build.
func (s *BuildService) BuildSite(ctx context.Context, input BuildInput) BuildOutput {
	ctx, span := s.tracer.Start(ctx, "BuildSite", trace.WithAttributes(
		attribute.String("calcsite.content_dir", input.ContentDir),
		attribute.String("calcsite.output_dir", input.OutputDir),
	))
	defer span.End()

	s.cli.PrintHeader("Calcsite Build")

	st := &buildState{
		input:  input,
		now:    s.now().UTC(),
		report: cli.NewBuildReport(s.cli, input.OutputDir),
		area:   fs.NewOutputArea(s.fs, input.OutputDir),
	}
	st.report.SetVerbose(input.Verbose)

	steps := []struct {
		name string
		run  func(context.Context, *buildState) error
	}{
		{"Loading content", s.loadContent},
		{"Resetting output directory", s.resetOutput},
		{"Rendering calculator pages", s.renderPages},
		{"Rendering index", s.renderIndex},
		{"Writing robots.txt", s.writeRobots},
		{"Writing sitemap.xml", s.writeSitemap},
	}

	for _, step := range steps {
		if err := s.runStep(ctx, st, step.name, step.run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			st.report.AddError(step.name, err.Error(), nil)
			st.report.Render()
			s.logger.Error("build failed", "step", step.name, "error", err)
			return st.output(err)
		}
	}

	st.report.Render()
	out := st.output(nil)
	s.logger.Info("build complete", "pages", len(out.Pages), "files", len(out.Files), "output", st.area.Root())
	return out
}

func (s *BuildService) runStep(ctx context.Context, st *buildState, name string, run func(context.Context, *buildState) error) error {
	ctx, span := s.tracer.Start(ctx, name)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}

	step := st.report.StartStep(name)
	err := run(ctx, st)
	st.report.EndStep(step, err == nil, errString(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *BuildService) loadContent(ctx context.Context, st *buildState) error {
	loader := content.NewLoader(s.fs, st.input.ContentDir, s.logger)

	site, err := loader.LoadSite()
	if err != nil {
		return fmt.Errorf("failed to load site settings: %w", err)
	}
	if st.input.BaseURL != "" {
		site.BaseURL = core.NormalizeBaseURL(st.input.BaseURL)
	}

	pages, err := loader.LoadPages()
	if err != nil {
		return fmt.Errorf("failed to load pages: %w", err)
	}

	if err := core.ValidatePages(pages, st.input.AllowDuplicateSlugs); err != nil {
		return err
	}
	for _, slug := range core.DuplicateSlugs(pages) {
		s.logger.Warn("duplicate slug, last definition wins", "slug", slug)
		st.report.AddWarning(slug, "Duplicate slug", []string{"later definitions overwrite " + core.PageFileName(slug)})
	}

	st.site = site
	st.pages = pages
	st.report.SetPageCount(len(pages))
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("calcsite.pages", len(pages)))
	s.logger.Debug("content loaded", "site", site.Name, "base_url", site.BaseURL, "pages", len(pages))
	return nil
}

func (s *BuildService) resetOutput(_ context.Context, st *buildState) error {
	if err := core.CheckOutputDir(st.area.Root(), st.input.ContentDir); err != nil {
		return err
	}
	return st.area.Reset()
}

func (s *BuildService) renderPages(ctx context.Context, st *buildState) error {
	for _, page := range st.pages {
		if err := ctx.Err(); err != nil {
			return err
		}

		rendered, err := core.RenderPage(page, st.site, st.now)
		if err != nil {
			return err
		}
		if err := s.write(st, rendered.FileName, rendered.HTML); err != nil {
			return err
		}
		st.written = append(st.written, core.GeneratedPage{URL: rendered.URL})
		s.logger.Debug("page rendered", "slug", page.Slug, "url", rendered.URL)
	}
	return nil
}

func (s *BuildService) renderIndex(_ context.Context, st *buildState) error {
	urls := make([]string, 0, len(st.written))
	for _, p := range st.written {
		urls = append(urls, p.URL)
	}
	return s.write(st, core.IndexFileName, core.RenderIndex(urls, st.site, st.now))
}

func (s *BuildService) writeRobots(_ context.Context, st *buildState) error {
	return s.write(st, core.RobotsFileName, core.RenderRobots(st.site.BaseURL))
}

func (s *BuildService) writeSitemap(_ context.Context, st *buildState) error {
	urls := core.SitemapURLs(st.site.BaseURL, st.written)
	return s.write(st, core.SitemapFileName, core.RenderSitemap(urls, st.now))
}

func (s *BuildService) write(st *buildState, name, body string) error {
	path, err := st.area.WriteFile(name, body)
	if err != nil {
		return err
	}
	st.report.AddFile(path, len(body))
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
