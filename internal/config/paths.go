package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	BaseDir      string
	DataDir      string
	RawDir       string
	ProcessedDir string
	ReportsDir   string
	LogsDir      string

	// Well-known input files
	OrdersCSV string
	UsersCSV  string

	// Well-known output files
	AnalyticsTableCSV string
	UsersCleanCSV     string
	RunMetaJSON       string
	MissingnessCSV    string
	RevenueSummaryCSV string
}

// NewPaths builds the path layout rooted at the given base directory.
//
//	base/
//	  ├── data/
//	  │   ├── raw/          (orders.csv, users.csv exports)
//	  │   └── processed/    (analytics table, users table, run metadata)
//	  ├── reports/          (missingness + revenue summaries)
//	  └── logs/
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	rawDir := filepath.Join(dataDir, "raw")
	processedDir := filepath.Join(dataDir, "processed")
	reportsDir := filepath.Join(baseDir, "reports")

	return &Paths{
		BaseDir:      baseDir,
		DataDir:      dataDir,
		RawDir:       rawDir,
		ProcessedDir: processedDir,
		ReportsDir:   reportsDir,
		LogsDir:      filepath.Join(baseDir, "logs"),

		OrdersCSV: filepath.Join(rawDir, DefaultOrdersFile),
		UsersCSV:  filepath.Join(rawDir, DefaultUsersFile),

		AnalyticsTableCSV: filepath.Join(processedDir, AnalyticsTableFile),
		UsersCleanCSV:     filepath.Join(processedDir, UsersCleanFile),
		RunMetaJSON:       filepath.Join(processedDir, RunMetaFile),
		MissingnessCSV:    filepath.Join(reportsDir, MissingnessReportFile),
		RevenueSummaryCSV: filepath.Join(reportsDir, RevenueSummaryFile),
	}
}

// GetPaths returns the application paths. When baseDir is empty the layout
// is anchored at the executable directory, never the current working
// directory, so the pipeline behaves the same wherever it is launched from.
func GetPaths(baseDir string) (*Paths, error) {
	if baseDir != "" {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base directory: %w", err)
		}
		return NewPaths(abs), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.RawDir, p.ProcessedDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetRawPath returns the full path for a file in the raw data directory
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath returns the full path for a file in the processed directory
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetReportPath returns the full path for a file in the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
