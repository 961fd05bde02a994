package ui

import "github.com/charmbracelet/lipgloss"

// ── Styles ───────────────────────────────────────────────────────
// Soft palette shared by every screen.

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	starDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b")).
			Italic(true)
)

// starRow renders a 1..5 star picker or static rating.
func starRow(filled int) string {
	out := ""
	for i := 1; i <= 5; i++ {
		if i <= filled {
			out += starStyle.Render("★")
		} else {
			out += starDimStyle.Render("☆")
		}
	}
	return out
}
