package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/neilberkman/farmedge/internal/core/analysis"
	"github.com/neilberkman/farmedge/internal/core/models"
)

const (
	analyzeLabel   = "Analyze Crop"
	analyzingLabel = "Analyzing..."
)

func (m Model) analyzeButton() string {
	if m.workflow.State() == models.AnalysisRunning {
		return disabledButtonStyle.Render(m.spinner.View() + " " + analyzingLabel)
	}
	label := "⇪ " + analyzeLabel
	if m.focus == focusAnalyze {
		return focusedButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) viewDemo() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Live Demo: Crop Analysis"))
	b.WriteString("\n")
	b.WriteString(taglineStyle.Render("[ Sample Crop Image: maize field ]"))
	b.WriteString("\n\n")
	b.WriteString(m.analyzeButton())

	if m.workflow.State() == models.AnalysisRunning {
		elapsed := time.Since(m.workflow.Job().StartedAt)
		b.WriteString("\n")
		b.WriteString(renderProgressBar(elapsed, m.opts.Delay, m.width))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	// Results stay hidden until the run completes.
	if report := m.workflow.Report(); report != nil {
		b.WriteString("\n\n")
		b.WriteString(renderResults(*report, m.completedAt))
	}

	return panelStyle.Render(b.String())
}

func renderResults(report models.Report, completedAt time.Time) string {
	var b strings.Builder

	title := report.Diagnosis.Title
	if report.Diagnosis.Severity == models.SeverityWarning {
		title = "⚠ " + title
	}
	b.WriteString(warningStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(report.Diagnosis.Detail))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("AI Recommendations:"))
	b.WriteString("\n")
	for _, rec := range report.Recommendations {
		style := cropRecStyle
		if rec.Kind == "water" {
			style = waterRecStyle
		}
		b.WriteString(style.Render("• " + rec.Title))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(rec.Detail))
		b.WriteString("\n")
	}

	if report.Carbon.Credits > 0 {
		b.WriteString("\n")
		b.WriteString(cropRecStyle.Render("✓ Carbon Credits Available"))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("Earn %s credits ($%s value) by implementing these changes",
			humanize.Comma(int64(report.Carbon.Credits)), humanize.Commaf(report.Carbon.ValueUSD))))
		b.WriteString("\n")
	}

	if !completedAt.IsZero() {
		b.WriteString(taglineStyle.Render("analyzed " + humanize.Time(completedAt)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("c: copy report"))

	return b.String()
}

func (m Model) renderReportText(report models.Report) string {
	text, err := analysis.RenderReport(m.opts.ReportTemplate, report, m.completedAt)
	if err != nil {
		m.logger.Sugar().Warnf("report template failed, using plain summary: %v", err)
	}
	return text
}

// renderProgressBar shows elapsed time against the expected analysis time.
// It never reads 100% while the run is still pending.
func renderProgressBar(elapsed, expected time.Duration, width int) string {
	if expected <= 0 {
		return ""
	}

	ratio := float64(elapsed) / float64(expected)
	if ratio > 0.99 {
		ratio = 0.99
	}
	if ratio < 0 {
		ratio = 0
	}

	// Progress bar (use available width, max 40)
	barWidth := width - 30 // Leave space for the percentage
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 20 {
		barWidth = 20
	}

	filled := int(float64(barWidth) * ratio)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return fmt.Sprintf("[%s] %3.0f%%", bar, ratio*100)
}
