package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#4DB6AC")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#F3F4F6")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 3).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Background(lipgloss.Color("#1F2937")).
				Padding(0, 3)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(14)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	contentStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

// formatKey formats a help key
func formatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + helpStyle.UnsetMarginTop().Render(description)
}
