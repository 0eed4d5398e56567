package tui

import "github.com/charmbracelet/lipgloss"

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("205"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	doneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(lipgloss.Color("240"))

	dueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	subtaskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			PaddingLeft(4)

	userTurnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantTurnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	unreadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	readStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	calendarDayStyle = lipgloss.NewStyle().
				Width(4).
				Align(lipgloss.Right)

	calendarTaskDayStyle = lipgloss.NewStyle().
				Width(4).
				Align(lipgloss.Right).
				Bold(true).
				Foreground(lipgloss.Color("205"))

	facetLabelStyle = lipgloss.NewStyle().
			Width(22).
			Foreground(lipgloss.Color("245"))

	selectedValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	recordingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Blink(true)
)
