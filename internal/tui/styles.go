package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pausa/internal/config"
)

type Styles struct {
	Title    lipgloss.Style
	Step     lipgloss.Style
	Subtle   lipgloss.Style
	Selected lipgloss.Style
	Option   lipgloss.Style
	Danger   lipgloss.Style
	Warning  lipgloss.Style
	Status   lipgloss.Style
	Clock    lipgloss.Style
	Doc      lipgloss.Style
	Box      lipgloss.Style
}

type palette struct {
	accent, text, subtle, danger, warning, border lipgloss.Color
}

var (
	darkPalette = palette{
		accent:  lipgloss.Color("111"),
		text:    lipgloss.Color("252"),
		subtle:  lipgloss.Color("240"),
		danger:  lipgloss.Color("196"),
		warning: lipgloss.Color("214"),
		border:  lipgloss.Color("238"),
	}
	lightPalette = palette{
		accent:  lipgloss.Color("25"),
		text:    lipgloss.Color("235"),
		subtle:  lipgloss.Color("245"),
		danger:  lipgloss.Color("160"),
		warning: lipgloss.Color("130"),
		border:  lipgloss.Color("250"),
	}
)

func NewStyles(theme string) Styles {
	p := darkPalette
	if theme == config.ThemeLight {
		p = lightPalette
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		Step: lipgloss.NewStyle().
			Foreground(p.subtle),
		Subtle: lipgloss.NewStyle().
			Foreground(p.subtle).
			Italic(true),
		Selected: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		Option: lipgloss.NewStyle().
			Foreground(p.text),
		Danger: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning).
			Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(p.accent),
		Clock: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			Padding(1, 0),
		Doc: lipgloss.NewStyle().Padding(1, 2),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
	}
}
