package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/kaylendog/kali/internal/source"
)

// Reporter renders diagnostics with source context. Colorization is
// enabled only when the destination is a real terminal, detected the same
// way the reference tree gates its own colorized output.
type Reporter struct {
	Files *source.FileSet
	Out   io.Writer
	color bool
}

// NewReporter creates a Reporter writing to out. If out is an *os.File
// attached to a terminal, diagnostics are colorized.
func NewReporter(files *source.FileSet, out io.Writer) *Reporter {
	r := &Reporter{Files: files, Out: out}
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		r.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

// ForceColor overrides the terminal-detected colorization setting.
func (r *Reporter) ForceColor(on bool) {
	r.color = on
}

var (
	styleError  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleLoc    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleCaret  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleGutter = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Report renders a single diagnostic to the reporter's writer.
func (r *Reporter) Report(err Error) {
	fmt.Fprintln(r.Out, r.render(err))
}

// ReportAll renders every diagnostic in bag.
func (r *Reporter) ReportAll(bag *Bag) {
	for _, e := range bag.Errors() {
		r.Report(e)
	}
}

func (r *Reporter) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Reporter) render(err Error) string {
	span := err.Span()
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", r.style(styleError, "error"), err.Error())

	f := r.Files.File(span.File)
	if f == nil {
		return b.String()
	}
	line, col := f.Position(span.Start)
	fmt.Fprintf(&b, "  %s %s:%d:%d\n", r.style(styleGutter, "-->"), f.Path, line, col)

	text := f.Line(line)
	gutter := fmt.Sprintf("%d", line)
	fmt.Fprintf(&b, "%s %s %s\n", r.style(styleGutter, gutter), r.style(styleGutter, "|"), text)

	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	underline := strings.Repeat(" ", col-1) + strings.Repeat("^", width)
	fmt.Fprintf(&b, "%s %s %s\n", strings.Repeat(" ", len(gutter)), r.style(styleGutter, "|"), r.style(styleCaret, underline))
	return b.String()
}
