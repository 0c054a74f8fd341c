package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/neilberkman/farmedge/internal/core/analysis"
	"github.com/neilberkman/farmedge/internal/core/models"
)

// Identity provider kinds.
const (
	ProviderFile   = "file"
	ProviderMemory = "memory"
)

// DevSecret signs tokens when no secret is configured. It only protects
// against accidental edits of the token file.
const DevSecret = "farmedge-dev-secret"

type Config struct {
	LogFile  string
	Identity IdentityConfig
	Analysis AnalysisConfig
}

type IdentityConfig struct {
	Provider  string // file or memory
	TokenFile string
	Secret    string
}

type AnalysisConfig struct {
	Delay          time.Duration
	Crop           string
	ReportTemplate string
	Report         models.Report
}

type tomlConfig struct {
	LogFile  string `toml:"log_file"`
	Identity struct {
		Provider  string `toml:"provider"`
		TokenFile string `toml:"token_file"`
		Secret    string `toml:"secret"`
	} `toml:"identity"`
	Analysis struct {
		Delay           string                  `toml:"delay"`
		Crop            string                  `toml:"crop"`
		ReportTemplate  string                  `toml:"report_template"`
		Diagnosis       *models.Diagnosis       `toml:"diagnosis"`
		Recommendations []models.Recommendation `toml:"recommendations"`
		Carbon          *models.CarbonCredits   `toml:"carbon"`
	} `toml:"analysis"`
}

// Dir returns ~/.config/farmedge, or a relative fallback without a home dir.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".farmedge"
	}
	return filepath.Join(home, ".config", "farmedge")
}

// DefaultPath is the config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := Dir()
	return &Config{
		LogFile: filepath.Join(dir, "farmedge.log"),
		Identity: IdentityConfig{
			Provider:  ProviderFile,
			TokenFile: filepath.Join(dir, "session.jwt"),
			Secret:    DevSecret,
		},
		Analysis: AnalysisConfig{
			Delay:          analysis.DefaultDelay,
			Crop:           "maize",
			ReportTemplate: analysis.DefaultReportTemplate,
			Report:         analysis.DefaultReport(),
		},
	}
}

// Load reads the TOML config at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if tc.LogFile != "" {
		cfg.LogFile = expandHome(tc.LogFile)
	}
	if tc.Identity.Provider != "" {
		cfg.Identity.Provider = tc.Identity.Provider
	}
	if tc.Identity.TokenFile != "" {
		cfg.Identity.TokenFile = expandHome(tc.Identity.TokenFile)
	}
	if tc.Identity.Secret != "" {
		cfg.Identity.Secret = tc.Identity.Secret
	}

	if tc.Analysis.Delay != "" {
		d, err := time.ParseDuration(tc.Analysis.Delay)
		if err != nil {
			return nil, fmt.Errorf("analysis.delay: %w", err)
		}
		cfg.Analysis.Delay = d
	}
	if tc.Analysis.Crop != "" {
		cfg.Analysis.Crop = tc.Analysis.Crop
		cfg.Analysis.Report.Crop = tc.Analysis.Crop
	}
	if tc.Analysis.ReportTemplate != "" {
		cfg.Analysis.ReportTemplate = tc.Analysis.ReportTemplate
	}
	if tc.Analysis.Diagnosis != nil {
		cfg.Analysis.Report.Diagnosis = *tc.Analysis.Diagnosis
	}
	if len(tc.Analysis.Recommendations) > 0 {
		cfg.Analysis.Report.Recommendations = tc.Analysis.Recommendations
	}
	if tc.Analysis.Carbon != nil {
		cfg.Analysis.Report.Carbon = *tc.Analysis.Carbon
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Identity.Provider {
	case ProviderFile, ProviderMemory:
	default:
		return fmt.Errorf("identity.provider: unknown provider %q", c.Identity.Provider)
	}
	if c.Analysis.Delay <= 0 {
		return fmt.Errorf("analysis.delay must be positive, got %s", c.Analysis.Delay)
	}
	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
