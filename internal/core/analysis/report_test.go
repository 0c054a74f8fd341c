package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/farmedge/internal/core/models"
)

func TestRenderReport_Default(t *testing.T) {
	out, err := RenderReport("", DefaultReport(), time.Time{})
	require.NoError(t, err)

	for _, want := range []string{
		"Crop analysis (maize)",
		"! Early Drought Stress Detected",
		"Switch to Drought-Resistant Sorghum",
		"Reduce water usage by 20% (2,000L savings)",
		"Earn 10 credits ($50 value)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "completed", "zero time omits the age")
}

func TestRenderReport_CompletedAgo(t *testing.T) {
	out, err := RenderReport("", DefaultReport(), time.Now().Add(-3*time.Minute))
	require.NoError(t, err)
	assert.Contains(t, out, "completed 3 minutes ago")
}

func TestRenderReport_NoCredits(t *testing.T) {
	report := DefaultReport()
	report.Carbon = models.CarbonCredits{}

	out, err := RenderReport("", report, time.Time{})
	require.NoError(t, err)
	assert.NotContains(t, out, "Carbon Credits")
}

func TestRenderReport_CustomTemplate(t *testing.T) {
	out, err := RenderReport("{{diagnosis_title}}|{{#recommendations}}{{kind}};{{/recommendations}}", DefaultReport(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Early Drought Stress Detected|crop;water;\n", out)
}

func TestRenderReport_BadTemplateFallsBack(t *testing.T) {
	out, err := RenderReport("{{#unclosed}}", DefaultReport(), time.Time{})
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "Early Drought Stress Detected:"))
}
