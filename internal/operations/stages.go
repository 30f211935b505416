package operations

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"ordercli/internal/config"
	"ordercli/internal/dataprocessing"
	apperrors "ordercli/internal/errors"
	"ordercli/internal/exporter"
	"ordercli/internal/files"
)

// Output names used in the run metadata document.
const (
	OutputAnalyticsTable = "analytics_table"
	OutputUsersTable     = "users_table"
	OutputMissingness    = "missingness_summary"
	OutputRevenueSummary = "revenue_by_country"
	OutputRunMeta        = "run_meta"
)

// NewPipelineStages wires the full stage sequence from the configuration.
func NewPipelineStages(cfg *config.Config, paths *config.Paths, logger *slog.Logger) []Stage {
	return []Stage{
		NewLoadStage(logger),
		NewCleanStage(logger, cfg.Pipeline.DropRateThreshold),
		NewJoinStage(logger, cfg.Pipeline.UnmatchedPolicy, cfg.Pipeline.JoinCoverageThreshold),
		NewWinsorizeStage(logger, cfg.Pipeline.WinsorLowerPct, cfg.Pipeline.WinsorUpperPct),
		NewExportStage(logger, cfg, paths),
	}
}

// LoadStage reads the raw orders export (CSV or Excel) and the users table.
type LoadStage struct {
	BaseStage
	logger *slog.Logger
}

// NewLoadStage creates the load stage.
func NewLoadStage(logger *slog.Logger) *LoadStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStage{
		BaseStage: NewBaseStage(StageIDLoad, "Load raw exports"),
		logger:    logger,
	}
}

// Validate checks that both input files exist before anything runs.
func (s *LoadStage) Validate(state *PipelineState) error {
	for name, path := range map[string]string{"orders": state.OrdersPath, "users": state.UsersPath} {
		if path == "" {
			return apperrors.NewConfigError(fmt.Sprintf("no %s file configured", name), nil)
		}
		if _, err := os.Stat(path); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("%s file not found", name), err).
				WithContext("path", path)
		}
	}
	return nil
}

func (s *LoadStage) Execute(ctx context.Context, state *PipelineState) error {
	var err error
	if files.IsExcelExport(state.OrdersPath) {
		state.RawOrders, err = dataprocessing.ParseOrdersXLSX(state.OrdersPath)
	} else {
		state.RawOrders, err = dataprocessing.ParseOrdersCSV(state.OrdersPath)
	}
	if err != nil {
		return err
	}

	state.Users, err = dataprocessing.ParseUsersCSV(state.UsersPath)
	if err != nil {
		return err
	}

	// Missingness is measured on the raw rows, before the cleaner touches
	// anything, so the report reflects the export as delivered.
	state.Missingness = dataprocessing.Missingness(state.RawOrders)

	return nil
}

// CleanStage normalizes the raw orders and drops rows missing criticals.
type CleanStage struct {
	BaseStage
	cleaner *dataprocessing.Cleaner
}

// NewCleanStage creates the clean stage.
func NewCleanStage(logger *slog.Logger, dropRateThreshold float64) *CleanStage {
	return &CleanStage{
		BaseStage: NewBaseStage(StageIDClean, "Clean and normalize orders"),
		cleaner:   dataprocessing.NewCleaner(logger, dropRateThreshold),
	}
}

func (s *CleanStage) Execute(ctx context.Context, state *PipelineState) error {
	state.Orders, state.CleanReport = s.cleaner.Clean(ctx, state.RawOrders)
	state.AddWarning(state.CleanReport.Warning)
	return nil
}

// JoinStage left-joins the cleaned orders onto the users table.
type JoinStage struct {
	BaseStage
	joiner *dataprocessing.Joiner
}

// NewJoinStage creates the join stage.
func NewJoinStage(logger *slog.Logger, unmatchedPolicy string, coverageThreshold float64) *JoinStage {
	return &JoinStage{
		BaseStage: NewBaseStage(StageIDJoin, "Join orders to users"),
		joiner:    dataprocessing.NewJoiner(logger, unmatchedPolicy, coverageThreshold),
	}
}

func (s *JoinStage) Execute(ctx context.Context, state *PipelineState) error {
	records, report, err := s.joiner.Join(ctx, state.Orders, state.Users)
	if err != nil {
		return err
	}
	state.Records = records
	state.JoinReport = report
	state.AddWarning(report.Warning)
	return nil
}

// WinsorizeStage clamps the amount column to its percentile bounds.
type WinsorizeStage struct {
	BaseStage
	logger   *slog.Logger
	lowerPct float64
	upperPct float64
}

// NewWinsorizeStage creates the winsorize stage.
func NewWinsorizeStage(logger *slog.Logger, lowerPct, upperPct float64) *WinsorizeStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &WinsorizeStage{
		BaseStage: NewBaseStage(StageIDWinsorize, "Winsorize amounts"),
		logger:    logger,
		lowerPct:  lowerPct,
		upperPct:  upperPct,
	}
}

func (s *WinsorizeStage) Execute(ctx context.Context, state *PipelineState) error {
	state.WinsorRep = dataprocessing.Winsorize(ctx, s.logger, state.Records, s.lowerPct, s.upperPct)
	return nil
}

// ExportStage writes the analytics table, the cleaned users table, the
// quality reports and the run metadata document.
type ExportStage struct {
	BaseStage
	logger *slog.Logger
	cfg    *config.Config
	paths  *config.Paths
	writer *exporter.CSVWriter
}

// NewExportStage creates the export stage.
func NewExportStage(logger *slog.Logger, cfg *config.Config, paths *config.Paths) *ExportStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportStage{
		BaseStage: NewBaseStage(StageIDExport, "Export outputs"),
		logger:    logger,
		cfg:       cfg,
		paths:     paths,
		writer:    exporter.NewCSVWriter(paths),
	}
}

func (s *ExportStage) Execute(ctx context.Context, state *PipelineState) error {
	if err := s.paths.EnsureDirectories(); err != nil {
		return apperrors.NewStorageError("failed to create output directories", err)
	}

	if err := s.writer.WriteAnalyticsTable(state.Records); err != nil {
		return apperrors.NewStorageError("failed to write analytics table", err)
	}
	state.SetOutput(OutputAnalyticsTable, s.paths.AnalyticsTableCSV)

	if err := s.writer.WriteUsersTable(state.Users); err != nil {
		return apperrors.NewStorageError("failed to write users table", err)
	}
	state.SetOutput(OutputUsersTable, s.paths.UsersCleanCSV)

	if err := s.writer.WriteMissingnessReport(state.Missingness); err != nil {
		return apperrors.NewStorageError("failed to write missingness report", err)
	}
	state.SetOutput(OutputMissingness, s.paths.MissingnessCSV)

	state.Summaries = dataprocessing.NewSummarizer(s.logger).RevenueByCountry(ctx, state.Records)
	if err := s.writer.WriteCountrySummary(state.Summaries); err != nil {
		return apperrors.NewStorageError("failed to write revenue summary", err)
	}
	state.SetOutput(OutputRevenueSummary, s.paths.RevenueSummaryCSV)

	state.SetOutput(OutputRunMeta, s.paths.RunMetaJSON)
	meta := state.BuildRunMeta("success", PipelineConfigMap(s.cfg))
	if err := exporter.WriteRunMeta(s.paths.RunMetaJSON, meta); err != nil {
		return apperrors.NewStorageError("failed to write run metadata", err)
	}

	return nil
}

// PipelineConfigMap flattens the pipeline settings for the run metadata
// document.
func PipelineConfigMap(cfg *config.Config) map[string]string {
	return map[string]string{
		"drop_rate_threshold":     fmt.Sprintf("%g", cfg.Pipeline.DropRateThreshold),
		"join_coverage_threshold": fmt.Sprintf("%g", cfg.Pipeline.JoinCoverageThreshold),
		"unmatched_policy":        cfg.Pipeline.UnmatchedPolicy,
		"winsor_lower_pct":        fmt.Sprintf("%g", cfg.Pipeline.WinsorLowerPct),
		"winsor_upper_pct":        fmt.Sprintf("%g", cfg.Pipeline.WinsorUpperPct),
	}
}
