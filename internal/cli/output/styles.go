package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	ID      lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusSkipped lipgloss.Style
}

// NewStyles builds colored styles bound to w's color profile.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)

	green := lipgloss.Color("42")
	yellow := lipgloss.Color("214")
	red := lipgloss.Color("196")
	blue := lipgloss.Color("39")
	gray := lipgloss.Color("245")

	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(blue).MarginBottom(1),
		Header2: r.NewStyle().Bold(true).Foreground(blue),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(gray),
		Success: r.NewStyle().Foreground(green),
		Warning: r.NewStyle().Foreground(yellow),
		Error:   r.NewStyle().Foreground(red).Bold(true),
		Info:    r.NewStyle().Foreground(blue),
		ID:      r.NewStyle().Foreground(gray),

		StatusSuccess: r.NewStyle().Foreground(green).SetString("✓"),
		StatusFailed:  r.NewStyle().Foreground(red).SetString("✗"),
		StatusSkipped: r.NewStyle().Foreground(gray).SetString("-"),
	}
}

// PlainStyles returns styles that add no escape codes.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Header1:       plain,
		Header2:       plain,
		Bold:          plain,
		Muted:         plain,
		Success:       plain,
		Warning:       plain,
		Error:         plain,
		Info:          plain,
		ID:            plain,
		StatusSuccess: plain.SetString("[ok]"),
		StatusFailed:  plain.SetString("[fail]"),
		StatusSkipped: plain.SetString("[skip]"),
	}
}
