// Package ui formats command output. Styling comes from lipgloss and is only
// applied when color is enabled for the writer.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color modes, matching the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes styled status lines. Errors and warnings go to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style

	counts *message.Printer
}

// New returns a Printer for out and errOut using the given color mode.
func New(out, errOut io.Writer, mode string) *Printer {
	color := ColorEnabled(out, mode)

	r := lipgloss.NewRenderer(out)
	if color {
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI)
		}
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out:     out,
		errOut:  errOut,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		added:   r.NewStyle().Foreground(lipgloss.Color("6")),
		removed: r.NewStyle().Foreground(lipgloss.Color("5")),
		muted:   r.NewStyle().Faint(true),
		header:  r.NewStyle().Bold(true),
		counts:  message.NewPrinter(language.English),
	}
}

// ColorEnabled decides whether output to w is styled. NO_COLOR wins over
// auto; always and never are absolute.
func ColorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Success prints a ✓ line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Warn prints a ! line to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.errOut, p.warning.Render("!")+" "+fmt.Sprintf(format, args...))
}

// Error prints a ✗ line to the error writer.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.errOut, p.failure.Render("✗")+" "+fmt.Sprintf(format, args...))
}

// Info prints an unstyled line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a bold line.
func (p *Printer) Header(format string, args ...any) {
	fmt.Fprintln(p.out, p.header.Render(fmt.Sprintf(format, args...)))
}

// Written prints an indented "+ path" line.
func (p *Printer) Written(path string) {
	fmt.Fprintln(p.out, "  "+p.added.Render("+")+" "+path)
}

// Removed prints an indented "- path" line.
func (p *Printer) Removed(path string) {
	fmt.Fprintln(p.out, "  "+p.removed.Render("-")+" "+path)
}

// Detail prints an indented, faint line.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintln(p.out, "  "+p.muted.Render(fmt.Sprintf(format, args...)))
}

// Count formats n with thousands separators and the matching noun.
func (p *Printer) Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return p.counts.Sprintf("%d %s", n, noun)
}

// Table prints rows with columns padded to their widest cell. The first row
// is rendered as a header.
func (p *Printer) Table(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				cell = PadRight(cell, widths[i])
			}
			if n == 0 {
				cell = p.header.Render(cell)
			}
			cells[i] = cell
		}
		fmt.Fprintln(p.out, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// PadRight pads s with spaces to the given visual width.
func PadRight(s string, width int) string {
	vw := lipgloss.Width(s)
	if vw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vw)
}
