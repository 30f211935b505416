package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	// BaseDir anchors the data/reports/logs layout. Empty means the
	// directory containing the executable.
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// PipelineConfig contains the data-quality knobs of the cleaning pipeline
type PipelineConfig struct {
	// DropRateThreshold is the cleaned-row drop rate above which a
	// data-quality warning is surfaced. Drops beyond it never abort a run.
	DropRateThreshold float64 `yaml:"drop_rate_threshold" envconfig:"DROP_RATE_THRESHOLD" validate:"gte=0,lte=1"`

	// JoinCoverageThreshold is the minimum acceptable matched/total join
	// ratio before a referential-integrity warning is surfaced.
	JoinCoverageThreshold float64 `yaml:"join_coverage_threshold" envconfig:"JOIN_COVERAGE_THRESHOLD" validate:"gte=0,lte=1"`

	// UnmatchedPolicy decides what happens to orders with no matching
	// user: "drop" excludes them, "flag" keeps them with Matched=false.
	UnmatchedPolicy string `yaml:"unmatched_policy" envconfig:"UNMATCHED_POLICY" validate:"oneof=drop flag"`

	// Winsorization percentiles for the amount column.
	WinsorLowerPct float64 `yaml:"winsor_lower_pct" envconfig:"WINSOR_LOWER_PCT" validate:"gte=0,lt=1"`
	WinsorUpperPct float64 `yaml:"winsor_upper_pct" envconfig:"WINSOR_UPPER_PCT" validate:"gt=0,lte=1,gtfield=WinsorLowerPct"`

	// EnableTracing turns on OpenTelemetry stage spans (stdout exporter).
	EnableTracing bool `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
}

// Default returns the configuration defaults. Environment variables and the
// optional YAML file are layered on top by Load.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/etl.log",
		},
		Pipeline: PipelineConfig{
			DropRateThreshold:     DefaultDropRateThreshold,
			JoinCoverageThreshold: DefaultJoinCoverageThreshold,
			UnmatchedPolicy:       UnmatchedDrop,
			WinsorLowerPct:        DefaultWinsorLowerPct,
			WinsorUpperPct:        DefaultWinsorUpperPct,
		},
	}
}

// Load loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := envconfig.Process("ORDERPULSE", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against the struct-tag rules
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
