package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)

	titleCardStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	introHintStyle = lipgloss.NewStyle().Foreground(colorMuted)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
	paneTitleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	lockedBadgStyle = lipgloss.NewStyle().Foreground(colorLocked)

	dossierTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dossierTextStyle  = lipgloss.NewStyle().Foreground(colorText)
	dossierHintStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	dimStyle = lipgloss.NewStyle().Foreground(colorBorder)
)
