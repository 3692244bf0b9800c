package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - missing
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Styles
// =============================================================================

type styles struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	value   lipgloss.Style
	warning lipgloss.Style
	missing lipgloss.Style
	spinner lipgloss.Style

	iconSuccess lipgloss.Style
	iconError   lipgloss.Style
	iconWarning lipgloss.Style
	iconInfo    lipgloss.Style
}

// newStyles builds the palette for r, so output to a pipe or file carries
// no escape codes.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorCyan),
		dim:     r.NewStyle().Foreground(colorDim),
		value:   r.NewStyle().Foreground(colorWhite),
		warning: r.NewStyle().Foreground(colorYellow),
		missing: r.NewStyle().Foreground(colorRed),
		spinner: r.NewStyle().Foreground(colorCyan),

		iconSuccess: r.NewStyle().Foreground(colorGreen),
		iconError:   r.NewStyle().Foreground(colorRed),
		iconWarning: r.NewStyle().Foreground(colorYellow),
		iconInfo:    r.NewStyle().Foreground(colorGray),
	}
}

// =============================================================================
// Printer
// =============================================================================

// printer writes report lines styled to out and, when a file is attached,
// as plain text to the file.
type printer struct {
	out  io.Writer
	file io.Writer
	st   styles
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, st: newStyles(lipgloss.NewRenderer(out))}
}

// tee attaches a plain-text copy of every report line to w.
func (p *printer) tee(w io.Writer) { p.file = w }

func (p *printer) emit(styled, plain string) {
	fmt.Fprintln(p.out, styled)
	if p.file != nil {
		fmt.Fprintln(p.file, plain)
	}
}

func (p *printer) status(icon string, iconStyle lipgloss.Style, indent, msg string, msgStyle *lipgloss.Style) {
	styled := msg
	if msgStyle != nil {
		styled = msgStyle.Render(msg)
	}
	p.emit(indent+iconStyle.Render(icon)+" "+styled, indent+msg)
}

// title prints a section heading.
func (p *printer) title(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.emit(p.st.title.Render(msg), msg)
}

// success prints a success message.
func (p *printer) success(format string, args ...any) {
	p.status(iconSuccess, p.st.iconSuccess, "", fmt.Sprintf(format, args...), nil)
}

// missing prints an indented missing-package line.
func (p *printer) missing(format string, args ...any) {
	p.status(iconError, p.st.iconError, "  ", fmt.Sprintf(format, args...), &p.st.missing)
}

// errorf prints an error message.
func (p *printer) errorf(format string, args ...any) {
	p.status(iconError, p.st.iconError, "", fmt.Sprintf(format, args...), nil)
}

// warning prints a warning message.
func (p *printer) warning(format string, args ...any) {
	p.status(iconWarning, p.st.iconWarning, "", fmt.Sprintf(format, args...), &p.st.warning)
}

// info prints an info/status message.
func (p *printer) info(format string, args ...any) {
	p.status(iconInfo, p.st.iconInfo, "", fmt.Sprintf(format, args...), nil)
}

// detail prints an indented secondary line.
func (p *printer) detail(format string, args ...any) {
	msg := "  " + fmt.Sprintf(format, args...)
	p.emit(p.st.dim.Render(msg), msg)
}

// dependent prints one entry of a "Required by" list.
func (p *printer) dependent(name string) {
	p.emit("    "+p.st.dim.Render("-")+" "+p.st.value.Render(name), "    - "+name)
}

// item prints one tab-indented package name.
func (p *printer) item(name string) {
	p.emit("\t"+p.st.value.Render(name), "\t"+name)
}

// line prints msg unstyled.
func (p *printer) line(msg string) { p.emit(msg, msg) }

// blank prints an empty line.
func (p *printer) blank() { p.emit("", "") }

// fileLine prints a written-file line to the console only.
func (p *printer) fileLine(label, path string) {
	fmt.Fprintln(p.out, p.st.dim.Render(label)+" "+p.st.dim.Render(iconArrow)+" "+p.st.value.Render(path))
}
