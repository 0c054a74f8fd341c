package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	}

	m.mode = landingView
	return m, nil
}

func (m Model) viewHelp() string {
	help := `
FarmEdge AI - Help
══════════════════

LANDING PAGE
────────────
  tab, ←/→     Move focus between buttons
  Enter        Press the focused button
  g            Get Started / Dashboard
  a            Analyze the sample crop image
  c            Copy the analysis report to clipboard
  ?            Show this help
  q            Quit

SIGN-IN DIALOG
──────────────
  esc          Close

SESSIONS
────────
  farmedge signin --email you@example.com
  farmedge signout
  The page follows sign-in and sign-out without a restart.

Press any key to return
`

	return helpStyle.Render(help)
}
