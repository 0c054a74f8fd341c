package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/farmedge/internal/core/analysis"
	"github.com/neilberkman/farmedge/internal/core/session"
)

const progressInterval = 100 * time.Millisecond

type sessionChangedMsg struct {
	change session.Change
}

type sessionStreamClosedMsg struct{}

type analysisDoneMsg struct {
	result analysis.Result
}

type progressTickMsg struct {
	jobID string
}

type reportCopiedMsg struct {
	success bool
	message string
	err     error
}

// waitForSession blocks on the synchronizer's next change. It is re-issued
// after every change so the view follows the session for its lifetime.
func waitForSession(s *session.Synchronizer) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-s.Changes()
		if !ok {
			return sessionStreamClosedMsg{}
		}
		return sessionChangedMsg{change: change}
	}
}

// runAnalysis performs the (possibly slow) run off the event loop. The
// result is applied by Update, which drops it if it is stale.
func runAnalysis(w *analysis.Workflow, job analysis.Job) tea.Cmd {
	return func() tea.Msg {
		return analysisDoneMsg{result: w.Run(job)}
	}
}

func tickProgress(jobID string) tea.Cmd {
	return tea.Tick(progressInterval, func(time.Time) tea.Msg {
		return progressTickMsg{jobID: jobID}
	})
}

func copyReport(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return reportCopiedMsg{
				success: false,
				message: "Clipboard unavailable",
				err:     err,
			}
		}
		return reportCopiedMsg{
			success: true,
			message: "Report copied to clipboard!",
		}
	}
}
