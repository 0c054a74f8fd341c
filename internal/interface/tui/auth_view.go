package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// The sign-in dialog only explains how to sign in; credentials are handled
// by the identity provider, and the landing view updates on its own once the
// session changes.

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.mode = landingView
		return m, nil
	}
	return m, nil
}

func (m Model) viewAuth() string {
	var b strings.Builder

	if m.user != nil {
		b.WriteString(titleStyle.Render("Dashboard"))
		b.WriteString("\n\n")
		name := m.user.Email
		if name == "" {
			name = m.user.ID
		}
		b.WriteString("Signed in as " + accentStyle.Render(name))
		b.WriteString("\n\n")
		b.WriteString(taglineStyle.Render("Sign out from another terminal with:"))
		b.WriteString("\n  farmedge signout")
	} else {
		b.WriteString(titleStyle.Render("Welcome to FarmEdge AI"))
		b.WriteString("\n\n")
		b.WriteString(taglineStyle.Render("Sign in from another terminal with:"))
		b.WriteString("\n  farmedge signin --email you@example.com")
		if m.opts.TokenFile != "" {
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("session token: " + m.opts.TokenFile))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc: close"))

	return modalStyle.Render(b.String())
}
