package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("205") // Pinkish
	infoColor    = lipgloss.Color("39")  // Blue
	successColor = lipgloss.Color("42")  // Green
	warnColor    = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("160") // Red
	subtleColor  = lipgloss.Color("241") // Grey

	// Styles
	bannerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	infoBadge    = badge(infoColor, "INFO")
	successBadge = badge(successColor, "SUCCESS")
	warnBadge    = badge(warnColor, "WARN")
	errorBadge   = badge(errorColor, "ERROR")

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// PromptStyle is used for interactive questions.
	PromptStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	// HintStyle is used for help lines under prompts.
	HintStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	// ErrorTextStyle highlights inline validation errors.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

func badge(color lipgloss.Color, label string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(color).
		Padding(0, 1).
		Bold(true).
		SetString(label)
}

// Printer writes badge-prefixed messages to Out.
type Printer struct {
	Out io.Writer

	// BeforeWrite runs before every message, e.g. to clear a progress bar.
	BeforeWrite func()
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Out: w}
}

func (p *Printer) line(b lipgloss.Style, format string, a ...interface{}) {
	if p.BeforeWrite != nil {
		p.BeforeWrite()
	}
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(p.Out, "%s %s\n", b.String(), textStyle.Render(msg))
}

// Info prints an info message
func (p *Printer) Info(format string, a ...interface{}) { p.line(infoBadge, format, a...) }

// Success prints a success message
func (p *Printer) Success(format string, a ...interface{}) { p.line(successBadge, format, a...) }

// Warn prints a warning
func (p *Printer) Warn(format string, a ...interface{}) { p.line(warnBadge, format, a...) }

// Error prints an error message
func (p *Printer) Error(format string, a ...interface{}) { p.line(errorBadge, format, a...) }

// Banner prints the namescrub banner
func (p *Printer) Banner() {
	banner := `
 _ __   __ _ _ __ ___   ___  ___  ___ _ __ _   _| |__
| '_ \ / _' | '_ ' _ \ / _ \/ __|/ __| '__| | | | '_ \
| | | | (_| | | | | | |  __/\__ \ (__| |  | |_| | |_) |
|_| |_|\__,_|_| |_| |_|\___||___/\___|_|   \__,_|_.__/
`
	fmt.Fprintln(p.Out, bannerStyle.Render(strings.Trim(banner, "\n")))
	fmt.Fprintln(p.Out)
}
