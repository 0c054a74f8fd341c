package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/neilberkman/farmedge/internal/core/analysis"
	"github.com/neilberkman/farmedge/internal/core/models"
	"github.com/neilberkman/farmedge/internal/core/session"
)

type viewMode int

const (
	landingView viewMode = iota
	authView
	helpView
)

// focusTarget is the button that enter activates on the landing view.
type focusTarget int

const (
	focusCTA focusTarget = iota
	focusAnalyze
	focusTrial
)

const focusCount = 3

// Options carries presentation settings from config.
type Options struct {
	ReportTemplate string
	Delay          time.Duration // Expected analysis duration, for the progress bar
	TokenFile      string        // Shown in the sign-in dialog
	Logger         *zap.Logger
}

// Model is the landing page. It owns the view state; the synchronizer and
// workflow own session and analysis state and are torn down by the caller.
type Model struct {
	sessions *session.Synchronizer
	workflow *analysis.Workflow
	opts     Options
	logger   *zap.Logger

	mode   viewMode
	focus  focusTarget
	width  int
	height int

	// Session state mirrored from the synchronizer
	user         *models.User
	sessionKnown bool

	// Analysis presentation
	spinner     spinner.Model
	completedAt time.Time
	notice      string
}

func New(sessions *session.Synchronizer, workflow *analysis.Workflow, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Delay <= 0 {
		opts.Delay = analysis.DefaultDelay
	}

	return Model{
		sessions: sessions,
		workflow: workflow,
		opts:     opts,
		logger:   logger,
		mode:     landingView,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(spinnerStyle),
		),
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSession(m.sessions)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.mode {
		case landingView:
			return m.updateLanding(msg)
		case authView:
			return m.updateAuth(msg)
		case helpView:
			return m.updateHelp(msg)
		}

	case sessionChangedMsg:
		m.user = msg.change.User
		m.sessionKnown = true
		return m, waitForSession(m.sessions)

	case sessionStreamClosedMsg:
		return m, nil

	case analysisDoneMsg:
		if !m.workflow.Complete(msg.result) {
			return m, nil
		}
		if err := m.workflow.Err(); err != nil {
			m.notice = "Analysis failed: " + err.Error()
		} else {
			m.completedAt = time.Now()
			m.notice = ""
		}
		return m, nil

	case progressTickMsg:
		if m.workflow.State() == models.AnalysisRunning && m.workflow.Job().ID == msg.jobID {
			return m, tickProgress(msg.jobID)
		}
		return m, nil

	case spinner.TickMsg:
		if m.workflow.State() != models.AnalysisRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reportCopiedMsg:
		m.notice = msg.message
		if msg.err != nil {
			m.logger.Debug("clipboard unavailable", zap.Error(msg.err))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	switch m.mode {
	case authView:
		return m.viewAuth()
	case helpView:
		return m.viewHelp()
	}
	return m.viewLanding()
}

// User returns the signed-in user the view is rendering, nil if none.
func (m Model) User() *models.User {
	return m.user
}

// triggerAnalysis starts a run unless one is in flight.
func (m Model) triggerAnalysis() (tea.Model, tea.Cmd) {
	job, ok := m.workflow.Trigger()
	if !ok {
		return m, nil
	}
	m.notice = ""
	m.completedAt = time.Time{}
	return m, tea.Batch(
		runAnalysis(m.workflow, job),
		m.spinner.Tick,
		tickProgress(job.ID),
	)
}

func (m Model) openAuth() (tea.Model, tea.Cmd) {
	m.mode = authView
	return m, nil
}
