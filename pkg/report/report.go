// Package report prints classified, colour-differentiated status messages
// for the operator.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
)

const (
	infoMark    = "[..]"
	successMark = "[OK]"
	warnMark    = "[??]"
	errorMark   = "[!!]"
)

// Reporter writes operator-facing messages. It is separate from the slog
// logger, which carries diagnostics.
type Reporter struct {
	out io.Writer

	section lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// New creates a reporter for out. Colours follow the capabilities of out
// (and NO_COLOR); noColor forces plain output.
func New(out io.Writer, noColor bool) *Reporter {
	r := lipgloss.NewRenderer(out)
	style := func(c lipgloss.Color) lipgloss.Style {
		if noColor {
			return r.NewStyle()
		}
		return r.NewStyle().Foreground(c)
	}

	section := r.NewStyle()
	if !noColor {
		section = section.Bold(true).Foreground(colorBlue)
	}

	return &Reporter{
		out:     out,
		section: section,
		info:    style(colorBlue),
		success: style(colorGreen),
		warn:    style(colorYellow),
		err:     style(colorRed),
	}
}

// Section prints a step heading.
func (r *Reporter) Section(format string, args ...any) {
	r.line("", r.section, "\n==> "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Info(format string, args ...any) {
	r.line(infoMark, r.info, fmt.Sprintf(format, args...))
}

func (r *Reporter) Success(format string, args ...any) {
	r.line(successMark, r.success, fmt.Sprintf(format, args...))
}

func (r *Reporter) Warn(format string, args ...any) {
	r.line(warnMark, r.warn, fmt.Sprintf(format, args...))
}

func (r *Reporter) Error(format string, args ...any) {
	r.line(errorMark, r.err, fmt.Sprintf(format, args...))
}

// Plain prints text without classification, e.g. instructions.
func (r *Reporter) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Reporter) line(mark string, style lipgloss.Style, msg string) {
	if mark != "" {
		msg = mark + " " + msg
	}
	_, _ = fmt.Fprintln(r.out, style.Render(msg))
}
