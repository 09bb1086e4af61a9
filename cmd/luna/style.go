package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smallfx/luna/pkg/luna"
)

// Styles for rendered results. lipgloss degrades to plain text when
// stdout is not a terminal.
type styles struct {
	Value lipgloss.Style
	Error lipgloss.Style
	Nil   lipgloss.Style
}

var outStyles = styles{
	Value: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff9f")),
	Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f87")),
	Nil:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681")),
}

// renderValue stringifies v and styles it by kind.
func renderValue(v luna.Value) string {
	text := luna.Stringify(v, 0)
	switch v.Kind() {
	case luna.KindError:
		return outStyles.Error.Render(text)
	case luna.KindNil:
		return outStyles.Nil.Render(text)
	default:
		return outStyles.Value.Render(text)
	}
}
