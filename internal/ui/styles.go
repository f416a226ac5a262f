package ui

import (
	"github.com/charmbracelet/lipgloss"

	"dualdiff/internal/tree"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	successColor   = lipgloss.Color("#04B575")
	errorColor     = lipgloss.Color("#FF4B4B")
	orphanColor    = lipgloss.Color("#5FAFFF")
	sameColor      = lipgloss.Color("#BBBBBB")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	mirrorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2A2A2A"))

	metaStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	activeFilterStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Modal styles
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor).
			Padding(1, 2)

	progressModalStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(secondaryColor).
				Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor).
			MarginBottom(1)

	sourceStyle = lipgloss.NewStyle().Foreground(secondaryColor)
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
)

// nameStyle returns the name colour for a node status.
func nameStyle(s tree.Status) lipgloss.Style {
	switch s {
	case tree.Different:
		return lipgloss.NewStyle().Foreground(errorColor)
	case tree.LeftOnly, tree.RightOnly:
		return lipgloss.NewStyle().Foreground(orphanColor)
	default:
		return lipgloss.NewStyle().Foreground(sameColor)
	}
}
