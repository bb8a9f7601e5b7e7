package ui

import "github.com/charmbracelet/lipgloss"

// Field-log palette.
var (
	textPrimary   = lipgloss.Color("#E8E2D8")
	textSecondary = lipgloss.Color("#A6ADB1")
	textMuted     = lipgloss.Color("#7D858A")
	accentEmber   = lipgloss.Color("#D46A1E")
	accentForest  = lipgloss.Color("#2F5D42")
	warningAmber  = lipgloss.Color("#C18B2F")
	danger        = lipgloss.Color("#B84A3A")
	borderColor   = lipgloss.Color("#2E3A40")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(accentEmber).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(textSecondary)
	valueStyle   = lipgloss.NewStyle().Foreground(textPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(textMuted)
	filledStyle  = lipgloss.NewStyle().Foreground(textPrimary).Background(accentForest)
	warnStyle    = lipgloss.NewStyle().Foreground(warningAmber)
	dangerStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
	okStyle      = lipgloss.NewStyle().Foreground(accentForest).Bold(true)
	subshellName = lipgloss.NewStyle().Foreground(textSecondary).Width(4)
)
