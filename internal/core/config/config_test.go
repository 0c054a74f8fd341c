package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/farmedge/internal/core/analysis"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ProviderFile, cfg.Identity.Provider)
	assert.Equal(t, DevSecret, cfg.Identity.Secret)
	assert.Equal(t, analysis.DefaultDelay, cfg.Analysis.Delay)
	assert.Equal(t, analysis.DefaultReport(), cfg.Analysis.Report)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `log_file = "/tmp/farmedge-test.log"

[identity]
provider = "memory"
token_file = "/tmp/session.jwt"
secret = "s3cret"

[analysis]
delay = "500ms"
crop = "cassava"
report_template = "{{diagnosis_title}}"

[analysis.diagnosis]
title = "Leaf Blight"
detail = "Brown lesions on lower leaves."
severity = "warning"

[[analysis.recommendations]]
kind = "treatment"
title = "Apply copper fungicide"
detail = "Two sprays, ten days apart"

[analysis.carbon]
credits = 3
value_usd = 15.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/farmedge-test.log", cfg.LogFile)
	assert.Equal(t, ProviderMemory, cfg.Identity.Provider)
	assert.Equal(t, "/tmp/session.jwt", cfg.Identity.TokenFile)
	assert.Equal(t, "s3cret", cfg.Identity.Secret)
	assert.Equal(t, 500*time.Millisecond, cfg.Analysis.Delay)
	assert.Equal(t, "cassava", cfg.Analysis.Crop)
	assert.Equal(t, "cassava", cfg.Analysis.Report.Crop)
	assert.Equal(t, "{{diagnosis_title}}", cfg.Analysis.ReportTemplate)
	assert.Equal(t, "Leaf Blight", cfg.Analysis.Report.Diagnosis.Title)
	require.Len(t, cfg.Analysis.Report.Recommendations, 1)
	assert.Equal(t, "Apply copper fungicide", cfg.Analysis.Report.Recommendations[0].Title)
	assert.Equal(t, 3, cfg.Analysis.Report.Carbon.Credits)
	assert.InDelta(t, 15.5, cfg.Analysis.Report.Carbon.ValueUSD, 0.001)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `[analysis]
delay = "3s"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Analysis.Delay)
	assert.Equal(t, analysis.DefaultReport().Recommendations, cfg.Analysis.Report.Recommendations)
	assert.Equal(t, ProviderFile, cfg.Identity.Provider)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "log_file = "},
		{"bad delay", "[analysis]\ndelay = \"soon\"\n"},
		{"negative delay", "[analysis]\ndelay = \"-1s\"\n"},
		{"unknown provider", "[identity]\nprovider = \"ldap\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "farm", "session.jwt"), expandHome("~/farm/session.jwt"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
	assert.Equal(t, "~", expandHome("~"))
}
