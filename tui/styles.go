package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	seatFreeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	seatOccupiedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Strikethrough(true)

	seatChosenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			Reverse(true)

	cartStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	noticeInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	noticeSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	noticeWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220"))

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)
