package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Underline(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
)

// Printer writes human oriented messages and tables to the console
type Printer struct {
	w     io.Writer
	quiet bool
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// ErrorPrinter returns a printer that writes to stderr
func ErrorPrinter() *Printer {
	return NewPrinter(os.Stderr)
}

// SetQuiet suppresses Success, Info and Subtle messages
func (p *Printer) SetQuiet(quiet bool) {
	p.quiet = quiet
}

func (p *Printer) say(style lipgloss.Style, skipWhenQuiet bool, format string, args ...any) {
	if skipWhenQuiet && p.quiet {
		return
	}
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

// Success prints a confirmation of a completed action
func (p *Printer) Success(format string, args ...any) {
	p.say(successStyle, true, "✓ "+format, args...)
}

// Error prints an error message, even in quiet mode
func (p *Printer) Error(format string, args ...any) {
	p.say(errorStyle, false, "✗ "+format, args...)
}

// Warning prints a warning, even in quiet mode
func (p *Printer) Warning(format string, args ...any) {
	p.say(warningStyle, false, "⚠ "+format, args...)
}

func (p *Printer) Info(format string, args ...any) {
	p.say(infoStyle, true, "ℹ "+format, args...)
}

func (p *Printer) Subtle(format string, args ...any) {
	p.say(subtleStyle, true, format, args...)
}

func (p *Printer) Header(format string, args ...any) {
	p.say(headerStyle, false, format, args...)
}

// Println prints an unstyled line
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Overdue renders s in the overdue color
func (p *Printer) Overdue(s string) string {
	return overdueStyle.Render(s)
}

// Done renders s struck through
func (p *Printer) Done(s string) string {
	return doneStyle.Render(s)
}

// Confirm asks a yes/no question and reads the answer from in.
// Anything but y or yes is a no.
func (p *Printer) Confirm(in io.Reader, format string, args ...any) bool {
	fmt.Fprint(p.w, warningStyle.Render(fmt.Sprintf(format, args...))+" [y/N]: ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Table prints rows in aligned columns under a bold header. Cells may
// already be styled; widths are measured on what is visible.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			cell = padRight(cell, w)
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	separator := make([]string, len(widths))
	for i, w := range widths {
		separator[i] = strings.Repeat("-", w)
	}

	fmt.Fprintln(p.w, line(headers, &boldStyle))
	fmt.Fprintln(p.w, subtleStyle.Render(strings.Join(separator, "  ")))
	for _, row := range rows {
		fmt.Fprintln(p.w, line(row, nil))
	}
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
