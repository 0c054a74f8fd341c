package analysis

import (
	"context"
	"time"

	"github.com/neilberkman/farmedge/internal/core/models"
)

// DefaultDelay is how long the simulated analysis takes.
const DefaultDelay = 2 * time.Second

// Request identifies what to analyze.
type Request struct {
	JobID string
	Crop  string
	Image string // Reference to the image; the simulated analyzer ignores it
}

// Analyzer produces a report for a crop image. Implementations must honor
// ctx cancellation.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (models.Report, error)
}

// SimulatedAnalyzer waits a fixed delay and returns a fixed report.
type SimulatedAnalyzer struct {
	Delay  time.Duration
	Report models.Report
}

// NewSimulatedAnalyzer returns an analyzer for report. A non-positive delay
// means DefaultDelay.
func NewSimulatedAnalyzer(delay time.Duration, report models.Report) *SimulatedAnalyzer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &SimulatedAnalyzer{Delay: delay, Report: report}
}

// Analyze implements Analyzer.
func (a *SimulatedAnalyzer) Analyze(ctx context.Context, req Request) (models.Report, error) {
	timer := time.NewTimer(a.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return models.Report{}, ctx.Err()
	case <-timer.C:
	}

	report := a.Report
	if req.Crop != "" {
		report.Crop = req.Crop
	}
	return report, nil
}

// DefaultReport is the sample result shown by the landing page demo.
func DefaultReport() models.Report {
	return models.Report{
		Crop: "maize",
		Diagnosis: models.Diagnosis{
			Title:    "Early Drought Stress Detected",
			Detail:   "AI analysis shows signs of water stress in your maize crop.",
			Severity: models.SeverityWarning,
		},
		Recommendations: []models.Recommendation{
			{
				Kind:   "crop",
				Title:  "Switch to Drought-Resistant Sorghum",
				Detail: "Estimated yield increase: 25%",
			},
			{
				Kind:   "water",
				Title:  "Optimize Irrigation",
				Detail: "Reduce water usage by 20% (2,000L savings)",
			},
		},
		Carbon: models.CarbonCredits{
			Credits:  10,
			ValueUSD: 50,
		},
	}
}
