package cli

import (
	"fmt"
	"io"
	"os"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// Output prints the human-facing progress of a command. Structured logs go
// through slog instead.
type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

// NewOutput writes to the process's stdout and stderr, with colors when
// stdout is a terminal and NO_COLOR is unset.
func NewOutput() *Output {
	return &Output{
		out:          os.Stdout,
		errOut:       os.Stderr,
		enableColors: isTerminal() && os.Getenv("NO_COLOR") == "",
	}
}

// NewWriterOutput writes to out and errOut without colors.
func NewWriterOutput(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) paint(color, text string) string {
	if !o.enableColors {
		return text
	}
	return color + text + colorReset
}

func (o *Output) Green(text string) string  { return o.paint(colorGreen, text) }
func (o *Output) Yellow(text string) string { return o.paint(colorYellow, text) }
func (o *Output) Red(text string) string    { return o.paint(colorRed, text) }
func (o *Output) Gray(text string) string   { return o.paint(colorGray, text) }

func (o *Output) Writer() io.Writer {
	return o.out
}

func (o *Output) ErrWriter() io.Writer {
	return o.errOut
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintf(o.out, "%s\n\n", msg)
}

func (o *Output) PrintStep(msg string, args ...any) {
	o.line(o.out, "", msg, args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	o.line(o.out, o.Green("✓ "), msg, args...)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	o.line(o.out, o.Yellow("⚠ "), msg, args...)
}

func (o *Output) PrintError(msg string, args ...any) {
	o.line(o.errOut, o.Red("✗ "), msg, args...)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", o.Gray(path))
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}

func (o *Output) line(w io.Writer, marker, msg string, args ...any) {
	fmt.Fprintf(w, "  %s%s\n", marker, fmt.Sprintf(msg, args...))
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
