package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neilberkman/farmedge/internal/core/models"
)

const (
	ctaSignedIn  = "Dashboard"
	ctaSignedOut = "Get Started"
	trialLabel   = "Start Your Free Trial"
)

var features = []struct{ title, description string }{
	{"AI Climate Advisor", "Weather predictions and crop recommendations from satellite data."},
	{"Precision Farming", "Soil health and crop monitoring with sensors and computer vision."},
	{"Carbon Credits", "Earn and trade credits for sustainable practices."},
	{"Local Language Support", "Farming advice in your language through a chatbot."},
	{"Community Knowledge", "Learn from other farmers' experiences."},
	{"Impact Tracking", "Follow your farm's performance and environmental impact."},
}

// ctaLabel is the primary button text. Presence of a user is the only input.
func ctaLabel(user *models.User) string {
	if user != nil {
		return ctaSignedIn
	}
	return ctaSignedOut
}

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.mode = helpView
		return m, nil

	case "tab", "right", "l":
		m.focus = (m.focus + 1) % focusCount
		return m, nil

	case "shift+tab", "left", "h":
		m.focus = (m.focus + focusCount - 1) % focusCount
		return m, nil

	case "enter", " ":
		switch m.focus {
		case focusAnalyze:
			return m.triggerAnalysis()
		default:
			return m.openAuth()
		}

	case "g":
		return m.openAuth()

	case "a":
		return m.triggerAnalysis()

	case "c":
		if report := m.workflow.Report(); report != nil {
			return m, copyReport(m.renderReportText(*report))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) renderButton(label string, target focusTarget) string {
	if m.focus == target {
		return focusedButtonStyle.Render(label + " ›")
	}
	return buttonStyle.Render(label + " ›")
}

func (m Model) viewLanding() string {
	var b strings.Builder

	b.WriteString(badgeStyle.Render("● AI-Powered Farming Assistant"))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("FarmEdge ") + accentStyle.Render("AI"))
	b.WriteString("\n")
	b.WriteString(taglineStyle.Render("Boosting crop yields while fighting climate change, one small farm at a time."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.renderButton(ctaLabel(m.user), focusCTA),
		"  ",
		outlineButtonStyle.Render("Learn More"),
	))
	if m.user != nil && m.user.Email != "" {
		b.WriteString("  " + taglineStyle.Render("signed in as "+m.user.Email))
	}
	b.WriteString("\n\n")

	b.WriteString(taglineStyle.Render("30% yield increase · 50K+ farmers supported · 25% lower carbon footprint"))
	b.WriteString("\n\n")

	b.WriteString(m.viewDemo())
	b.WriteString("\n\n")

	for _, f := range features {
		b.WriteString(cropRecStyle.Render(f.title))
		b.WriteString("  ")
		b.WriteString(taglineStyle.Render(f.description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderButton(trialLabel, focusTrial))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("tab: focus · enter: select · a: analyze · g: get started · ?: help · q: quit"))
	return b.String()
}
