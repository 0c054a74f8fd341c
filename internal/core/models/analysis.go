package models

// AnalysisState is the phase of the crop analysis demo.
type AnalysisState int

const (
	AnalysisIdle AnalysisState = iota
	AnalysisRunning
	AnalysisCompleted
)

func (s AnalysisState) String() string {
	switch s {
	case AnalysisIdle:
		return "idle"
	case AnalysisRunning:
		return "analyzing"
	case AnalysisCompleted:
		return "completed"
	}
	return "unknown"
}

// Severity of a diagnosis.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnosis is the headline finding of an analysis.
type Diagnosis struct {
	Title    string   `toml:"title"`
	Detail   string   `toml:"detail"`
	Severity Severity `toml:"severity"`
}

// Recommendation is one suggested action.
type Recommendation struct {
	Kind   string `toml:"kind"` // crop, water, ...
	Title  string `toml:"title"`
	Detail string `toml:"detail"`
}

// CarbonCredits describes credits earned by following the recommendations.
type CarbonCredits struct {
	Credits  int     `toml:"credits"`
	ValueUSD float64 `toml:"value_usd"`
}

// Report is the payload returned by an analyzer. The workflow treats it as
// opaque.
type Report struct {
	Crop            string           `toml:"crop"`
	Diagnosis       Diagnosis        `toml:"diagnosis"`
	Recommendations []Recommendation `toml:"recommendations"`
	Carbon          CarbonCredits    `toml:"carbon"`
}
