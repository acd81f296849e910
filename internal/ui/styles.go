package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups the lipgloss styles used by the CLI presenters.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
}

func color256(code int) lipgloss.Color { return lipgloss.Color(strconv.Itoa(code)) }

// CurrentStyles returns the styles matching the active theme. With
// NoColorTheme every style renders its text unchanged.
func CurrentStyles() Styles {
	c := GetCurrentTheme().codes
	if c == nil {
		return Styles{
			Title:   lipgloss.NewStyle(),
			Header:  lipgloss.NewStyle(),
			Label:   lipgloss.NewStyle(),
			Success: lipgloss.NewStyle(),
			Failure: lipgloss.NewStyle(),
		}
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(color256(c.primary)),
		Header:  lipgloss.NewStyle().Bold(true).Underline(true),
		Label:   lipgloss.NewStyle().Foreground(color256(c.secondary)),
		Success: lipgloss.NewStyle().Foreground(color256(c.success)),
		Failure: lipgloss.NewStyle().Bold(true).Foreground(color256(c.failure)),
	}
}
