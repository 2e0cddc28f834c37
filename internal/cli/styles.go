package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#00D787")
	colorError   = lipgloss.Color("#FF5F87")
	colorWarning = lipgloss.Color("#FFAF00")
	colorInfo    = lipgloss.Color("#5FAFFF")
	colorMuted   = lipgloss.Color("#888888")
)

var (
	styleTitle   = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleBold    = lipgloss.NewStyle().Bold(true)
)

const rule = "═══════════════════════════════════════════════════════════"

// banner prints a title between two rules
func banner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleMuted.Render(rule))
	fmt.Fprintln(w, styleTitle.Render("  "+title))
	fmt.Fprintln(w, styleMuted.Render(rule))
	fmt.Fprintln(w)
}

// field prints an aligned "label: value" line
func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", styleBold.Render(fmt.Sprintf("%-14s", label+":")), value)
}

func success(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, styleSuccess.Render("✓ "+fmt.Sprintf(format, a...)))
}

func failure(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, styleError.Render("✗ "+fmt.Sprintf(format, a...)))
}

func warn(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, styleWarning.Render("! "+fmt.Sprintf(format, a...)))
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
