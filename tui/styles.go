package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("57")
	muted  = lipgloss.Color("240")
	light  = lipgloss.Color("229")
	danger = lipgloss.Color("160")

	titleStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	activeTab   = lipgloss.NewStyle().Padding(0, 1).Foreground(light).Background(accent).Bold(true)
	inactiveTab = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	bannerStyle = lipgloss.NewStyle().Foreground(light).Background(accent).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(light).Background(danger).Padding(0, 1)
	promptStyle = lipgloss.NewStyle().Foreground(light).Background(danger).Bold(true).Padding(0, 1)
)

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(muted)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(light).
		Background(accent).
		Bold(true)
	return s
}
