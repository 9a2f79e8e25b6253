package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Paragraph   lipgloss.Style
	Selected    lipgloss.Style
	Reading     lipgloss.Style
	StatusBadge lipgloss.Style
	StatusText  lipgloss.Style
	Help        lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Paragraph: lipgloss.NewStyle().
			PaddingLeft(4),
		Selected: lipgloss.NewStyle().
			PaddingLeft(2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}),
		Reading: lipgloss.NewStyle().
			PaddingLeft(2).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#AD58B4", Dark: "#AD58B4"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#232323", Dark: "#DDDDDD"}).
			Bold(true),
		StatusBadge: lipgloss.NewStyle().
			Padding(0, 1).
			Background(lipgloss.Color("#AD58B4")).
			Foreground(lipgloss.Color("#FFFDF5")),
		StatusText: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}),
	}
}

func lipglossWidth(s string) int {
	return lipgloss.Width(s)
}
