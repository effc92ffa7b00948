package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan
	ColorBlue      = lipgloss.Color("75")  // Blue

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	StylePlaceholder = lipgloss.NewStyle().Foreground(ColorSecondary).Italic(true)

	// Task list
	StyleOverdue   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleDueSoon   = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleCompleted = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)

	// Priority tiers
	StyleTierHigh     = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleTierMedium   = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleTierLow      = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleTierUnscored = lipgloss.NewStyle().Foreground(ColorSecondary)

	// Boxes
	StyleResultsBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 1)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// TierStyle returns the style used for a priority tier.
func TierStyle(t Tier) lipgloss.Style {
	switch t {
	case TierHigh:
		return StyleTierHigh
	case TierMedium:
		return StyleTierMedium
	case TierLow:
		return StyleTierLow
	default:
		return StyleTierUnscored
	}
}
