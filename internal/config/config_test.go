package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultDropRateThreshold, cfg.Pipeline.DropRateThreshold)
	assert.Equal(t, DefaultJoinCoverageThreshold, cfg.Pipeline.JoinCoverageThreshold)
	assert.Equal(t, UnmatchedDrop, cfg.Pipeline.UnmatchedPolicy)
	assert.Equal(t, DefaultWinsorLowerPct, cfg.Pipeline.WinsorLowerPct)
	assert.Equal(t, DefaultWinsorUpperPct, cfg.Pipeline.WinsorUpperPct)
	assert.False(t, cfg.Pipeline.EnableTracing)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := `
logging:
  level: debug
pipeline:
  drop_rate_threshold: 0.25
  unmatched_policy: flag
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 0.25, cfg.Pipeline.DropRateThreshold)
	assert.Equal(t, UnmatchedFlag, cfg.Pipeline.UnmatchedPolicy)
	// Untouched values keep their defaults
	assert.Equal(t, DefaultWinsorUpperPct, cfg.Pipeline.WinsorUpperPct)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	content := "pipeline:\n  drop_rate_threshold: 0.25\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("ORDERPULSE_PIPELINE_DROP_RATE_THRESHOLD", "0.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Pipeline.DropRateThreshold)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, UnmatchedDrop, cfg.Pipeline.UnmatchedPolicy)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"drop rate above one", func(c *Config) { c.Pipeline.DropRateThreshold = 1.5 }},
		{"unknown policy", func(c *Config) { c.Pipeline.UnmatchedPolicy = "keep" }},
		{"inverted winsor bounds", func(c *Config) {
			c.Pipeline.WinsorLowerPct = 0.9
			c.Pipeline.WinsorUpperPct = 0.1
		}},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPaths_Layout(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(base)

	assert.Equal(t, filepath.Join(base, "data", "raw"), paths.RawDir)
	assert.Equal(t, filepath.Join(base, "data", "processed"), paths.ProcessedDir)
	assert.Equal(t, filepath.Join(base, "data", "raw", "orders.csv"), paths.OrdersCSV)
	assert.Equal(t, filepath.Join(base, "data", "processed", "analytics_table.csv"), paths.AnalyticsTableCSV)
	assert.Equal(t, filepath.Join(base, "reports", "revenue_by_country.csv"), paths.RevenueSummaryCSV)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths := NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.RawDir, paths.ProcessedDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestGetPaths_ExplicitBase(t *testing.T) {
	base := t.TempDir()
	paths, err := GetPaths(base)
	require.NoError(t, err)
	assert.Equal(t, base, paths.BaseDir)
}
