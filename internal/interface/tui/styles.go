package tui

import "github.com/charmbracelet/lipgloss"

// Global styles used across views
var (
	// Hero styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("28"))

	accentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("40"))

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")) // Lighter gray that works better in dark terminals

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("22")).
			Background(lipgloss.Color("194")).
			Padding(0, 1)

	// Buttons
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("28")).
			Padding(0, 2).
			Bold(true)

	focusedButtonStyle = buttonStyle.
				Background(lipgloss.Color("34")).
				Underline(true)

	disabledButtonStyle = buttonStyle.
				Background(lipgloss.Color("240"))

	outlineButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Border(lipgloss.NormalBorder(), false, true).
				BorderForeground(lipgloss.Color("34")).
				Padding(0, 1)

	// Demo panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("114")).
			Padding(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")).
			Bold(true)

	cropRecStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	waterRecStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("250"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	// Modal
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("28")).
			Padding(1, 3)

	// Help view styles
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
