package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"

	"github.com/neilberkman/farmedge/internal/core/models"
)

// DefaultReportTemplate renders a report as plain text.
const DefaultReportTemplate = `Crop analysis ({{{crop}}}){{#completed_ago}}, completed {{{completed_ago}}}{{/completed_ago}}

{{#warning}}! {{/warning}}{{{diagnosis_title}}}
  {{{diagnosis_detail}}}

AI Recommendations:
{{#recommendations}}
  - {{{title}}}
    {{{detail}}}
{{/recommendations}}
{{#has_credits}}
Carbon Credits Available
  Earn {{credits}} credits (${{credit_value}} value) by implementing these changes
{{/has_credits}}`

// RenderReport renders report with a mustache template. completedAt may be
// zero. If the template fails, a plain summary is returned with the error.
func RenderReport(tmpl string, report models.Report, completedAt time.Time) (string, error) {
	if tmpl == "" {
		tmpl = DefaultReportTemplate
	}

	recs := make([]map[string]interface{}, 0, len(report.Recommendations))
	for _, r := range report.Recommendations {
		recs = append(recs, map[string]interface{}{
			"kind":   r.Kind,
			"title":  r.Title,
			"detail": r.Detail,
		})
	}

	completedAgo := ""
	if !completedAt.IsZero() {
		completedAgo = humanize.Time(completedAt)
	}

	templateData := map[string]interface{}{
		"crop":             report.Crop,
		"completed_ago":    completedAgo,
		"warning":          report.Diagnosis.Severity == models.SeverityWarning,
		"diagnosis_title":  report.Diagnosis.Title,
		"diagnosis_detail": report.Diagnosis.Detail,
		"recommendations":  recs,
		"has_credits":      report.Carbon.Credits > 0,
		"credits":          humanize.Comma(int64(report.Carbon.Credits)),
		"credit_value":     humanize.Commaf(report.Carbon.ValueUSD),
	}

	out, err := mustache.Render(tmpl, templateData)
	if err != nil {
		return plainSummary(report), fmt.Errorf("render report template: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func plainSummary(report models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", report.Diagnosis.Title, report.Diagnosis.Detail)
	for _, r := range report.Recommendations {
		fmt.Fprintf(&b, "- %s (%s)\n", r.Title, r.Detail)
	}
	return b.String()
}
