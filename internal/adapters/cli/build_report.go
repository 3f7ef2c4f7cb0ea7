package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

type BuildStep struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Success   bool
	Error     string
}

type cliOutputWithColors interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Writer() io.Writer
	ErrWriter() io.Writer
}

type BuildError struct {
	Page    string
	Message string
	Details []string
}

type WrittenFile struct {
	Path string
	Size int
}

type BuildReport struct {
	colors      cliOutputWithColors
	steps       []BuildStep
	warnings    []BuildError
	errors      []BuildError
	files       []WrittenFile
	startTime   time.Time
	pageCount   int
	outputDir   string
	verbose     bool
	hasFailures bool
}

func NewBuildReport(colors cliOutputWithColors, outputDir string) *BuildReport {
	return &BuildReport{
		colors:    colors,
		steps:     make([]BuildStep, 0),
		warnings:  make([]BuildError, 0),
		errors:    make([]BuildError, 0),
		files:     make([]WrittenFile, 0),
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetPageCount(count int) {
	r.pageCount = count
}

// SetVerbose lists every written file in the final report.
func (r *BuildReport) SetVerbose(verbose bool) {
	r.verbose = verbose
}

func (r *BuildReport) StartStep(name string) int {
	r.steps = append(r.steps, BuildStep{
		Name:      name,
		StartTime: time.Now(),
	})
	return len(r.steps) - 1
}

func (r *BuildReport) EndStep(step int, success bool, err string) {
	if step < 0 || step >= len(r.steps) {
		return
	}
	s := &r.steps[step]
	s.EndTime = time.Now()
	s.Success = success
	s.Error = err
	if !success {
		r.hasFailures = true
	}
}

func (r *BuildReport) AddFile(path string, size int) {
	r.files = append(r.files, WrittenFile{Path: path, Size: size})
}

func (r *BuildReport) AddWarning(page string, message string, details []string) {
	r.warnings = append(r.warnings, BuildError{
		Page:    page,
		Message: message,
		Details: details,
	})
}

func (r *BuildReport) AddError(page string, message string, details []string) {
	r.errors = append(r.errors, BuildError{
		Page:    page,
		Message: message,
		Details: details,
	})
	r.hasFailures = true
}

func (r *BuildReport) Files() []WrittenFile {
	return r.files
}

func (r *BuildReport) Warnings() []BuildError {
	return r.warnings
}

func (r *BuildReport) Render() {
	duration := time.Since(r.startTime)

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		r.renderMinimal(duration)
	} else {
		r.renderVerbose(duration)
	}
}

// renderMinimal covers clean builds. Any failure is recorded with AddError
// and goes through renderVerbose.
func (r *BuildReport) renderMinimal(duration time.Duration) {
	out := r.colors.Writer()
	fmt.Fprintf(out, "  "+r.colors.Green("✓ ")+"%d pages rendered\n", r.pageCount)
	r.renderFiles()
	fmt.Fprintf(out, "  "+r.colors.Green("✓ ")+"Build complete in %s (%s written)\n", formatDuration(duration), humanize.Bytes(r.totalBytes()))

	if r.outputDir != "" {
		fmt.Fprintf(out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderVerbose(duration time.Duration) {
	out := r.colors.Writer()
	fmt.Fprintf(out, "  %d pages rendered\n", r.pageCount)

	fmt.Fprintln(out)
	for _, step := range r.steps {
		status := r.colors.Green("✓")
		if !step.Success {
			status = r.colors.Red("✗")
		}
		fmt.Fprintf(out, "  %s %s\n", status, step.Name)
	}
	r.renderFiles()

	if len(r.errors) > 0 {
		errOut := r.colors.ErrWriter()
		fmt.Fprintln(errOut)
		fmt.Fprintf(errOut, "  "+r.colors.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderErrors(errOut, r.errors)
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  "+r.colors.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderErrors(out, r.warnings)
	}

	fmt.Fprintln(out)
	if len(r.errors) > 0 {
		fmt.Fprintf(r.colors.ErrWriter(), "  %s\n", r.colors.Red(fmt.Sprintf("Build failed after %s", formatDuration(duration))))
	} else {
		fmt.Fprintf(out, "  "+r.colors.Green("✓ ")+"Build complete in %s (%s written)\n", formatDuration(duration), humanize.Bytes(r.totalBytes()))
	}

	if r.outputDir != "" {
		fmt.Fprintf(out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderFiles() {
	if !r.verbose || len(r.files) == 0 {
		return
	}
	out := r.colors.Writer()
	for _, f := range r.files {
		fmt.Fprintf(out, "    %s %s\n", f.Path, r.colors.Gray(humanize.Bytes(uint64(f.Size))))
	}
}

func (r *BuildReport) renderErrors(out io.Writer, errors []BuildError) {
	for _, err := range errors {
		fmt.Fprintf(out, "  %s %s\n", r.colors.Red("✗"), err.Page)
		fmt.Fprintf(out, "    %s\n", err.Message)

		deduplicated := deduplicateStrings(err.Details)
		for _, detail := range deduplicated {
			fmt.Fprintf(out, "      • %s\n", detail)
		}
	}
}

func (r *BuildReport) HasFailures() bool {
	return r.hasFailures
}

func (r *BuildReport) totalBytes() uint64 {
	var total uint64
	for _, f := range r.files {
		total += uint64(f.Size)
	}
	return total
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

// deduplicateStrings collapses repeated details, keeping first-seen order.
func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if counts[item] > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, counts[item]))
		} else {
			result = append(result, item)
		}
	}

	return result
}
