// Package config provides centralized configuration management for the
// OrderPulse pipeline. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ORDERPULSE_* for namespacing:
//
//	ORDERPULSE_LOGGING_LEVEL=info
//	ORDERPULSE_PIPELINE_DROP_RATE_THRESHOLD=0.10
//	ORDERPULSE_PIPELINE_UNMATCHED_POLICY=drop
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to a single base directory:
//
//	paths, err := config.GetPaths(cfg.Paths.BaseDir)
//	ordersPath := paths.GetRawPath("orders.csv")
//	outPath := paths.GetProcessedPath("analytics_table.csv")
//
// # Validation
//
// All configuration is validated at load time with go-playground/validator:
// thresholds must lie in [0,1], the winsor percentiles must be ordered, and
// the unmatched-row policy must be one of the known values.
package config
