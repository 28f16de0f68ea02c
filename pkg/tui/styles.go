package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGold   = lipgloss.Color("#d4af37")
	colorError  = lipgloss.Color("#e74c3c")
	colorMuted  = lipgloss.Color("#666666")
	colorAccent = lipgloss.Color("#2196f3")
	colorText   = lipgloss.Color("#f5f5f5")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	priceStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorGold)
	strikeStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted)
	badgeStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorError).Padding(0, 1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	focusStyle    = panelStyle.BorderForeground(colorAccent)

	noteStyles = map[bool]lipgloss.Style{
		false: lipgloss.NewStyle().Foreground(colorText).Background(colorGold).Padding(0, 2),
		true:  lipgloss.NewStyle().Foreground(colorText).Background(colorError).Padding(0, 2),
	}
)
