// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Buffer text
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Mode badges
	ModeNormalColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#89B4FA"} // Normal mode badge
	ModeInsertColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#A6E3A1"} // Insert mode badge

	// Semantic color names - Status
	StatusPausedColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Paused session

	// Buffer text styles
	BufferTextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	CursorStyle     = lipgloss.NewStyle().Reverse(true)

	// Status bar styles
	statusBadgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
				Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"})

	ModeNormalBadgeStyle = statusBadgeStyle.Background(ModeNormalColor)
	ModeInsertBadgeStyle = statusBadgeStyle.Background(ModeInsertColor)
	PausedBadgeStyle     = statusBadgeStyle.Background(StatusPausedColor)

	StatusTextStyle = lipgloss.NewStyle().Padding(0, 1)

	// Footer help style
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
