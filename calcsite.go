// Package calcsite builds a static calculator site from a content directory.
//
// A content directory holds site.json (name, base_url) and pages.json (a list
// of calculator definitions). Build renders one HTML page per calculator plus
// index.html, robots.txt and sitemap.xml into an output directory that it
// owns: the directory is wiped at the start of every build.
package calcsite

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/3-lines-studio/calcsite/internal/adapters/cli"
	"github.com/3-lines-studio/calcsite/internal/adapters/fs"
	"github.com/3-lines-studio/calcsite/internal/core"
	"github.com/3-lines-studio/calcsite/internal/usecase"
)

var (
	ErrMalformedDocument = core.ErrMalformedDocument
	ErrDuplicateSlug     = core.ErrDuplicateSlug
	ErrInvalidSlug       = core.ErrInvalidSlug
	ErrInvalidFieldID    = core.ErrInvalidFieldID

	ErrOutputOverlapsContent = core.ErrOutputOverlapsContent
)

type Options struct {
	ContentDir string
	OutputDir  string

	// BaseURL overrides base_url from site.json when set.
	BaseURL string

	// AllowDuplicateSlugs keeps building when two pages share a slug; the
	// later page overwrites the earlier file.
	AllowDuplicateSlugs bool

	// Verbose lists every written file in the build report.
	Verbose bool

	// Logger receives structured build logs. Nil discards them.
	Logger *slog.Logger

	// Stdout and Stderr receive the human-readable build report. Nil
	// discards it.
	Stdout io.Writer
	Stderr io.Writer

	// Now is the build clock. Nil means time.Now.
	Now func() time.Time
}

type Result struct {
	// URLs lists the generated calculator pages in content order.
	URLs  []string
	Files []string
	// Warnings holds the non-fatal findings of the build, such as allowed
	// duplicate slugs.
	Warnings []string
}

// Build runs a full build and stops at the first error.
func Build(ctx context.Context, opts Options) (*Result, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	var buildOpts []usecase.BuildOption
	if opts.Now != nil {
		buildOpts = append(buildOpts, usecase.WithClock(opts.Now))
	}

	service := usecase.NewBuildService(fs.NewOSFileSystem(), cli.NewWriterOutput(stdout, stderr), opts.Logger, buildOpts...)
	out := service.BuildSite(ctx, usecase.BuildInput{
		ContentDir:          opts.ContentDir,
		OutputDir:           opts.OutputDir,
		BaseURL:             opts.BaseURL,
		AllowDuplicateSlugs: opts.AllowDuplicateSlugs,
		Verbose:             opts.Verbose,
	})

	result := &Result{Files: out.Files, Warnings: out.Warnings}
	for _, p := range out.Pages {
		result.URLs = append(result.URLs, p.URL)
	}
	if out.Error != nil {
		return result, out.Error
	}
	return result, nil
}
