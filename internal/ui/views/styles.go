package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	Help           lipgloss.Style
	Gutter         lipgloss.Style
	GutterSelected lipgloss.Style
	SelectionBg    lipgloss.Style
	Placeholder    lipgloss.Style
	Permalink      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")), // red
		Help:   lipgloss.NewStyle().Faint(true),
		Gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		GutterSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Placeholder: lipgloss.NewStyle().Faint(true).Italic(true),
		Permalink:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}
