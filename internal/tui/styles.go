package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	styleSubtle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleChip   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleSpin   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)
