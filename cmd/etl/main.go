package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ordercli/internal/config"
	"ordercli/internal/exporter"
	"ordercli/internal/files"
	"ordercli/internal/infrastructure"
	"ordercli/internal/operations"
)

func main() {
	ordersPath := flag.String("orders", "", "orders export file, CSV or Excel (defaults to the newest export in data/raw)")
	usersPath := flag.String("users", "", "users reference CSV (defaults to data/raw/users.csv)")
	baseDir := flag.String("base", "", "base directory for the data/reports/logs layout (defaults to the executable directory)")
	configFile := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := run(*ordersPath, *usersPath, *baseDir, *configFile); err != nil {
		slog.Error("etl run failed", "error", err)
		os.Exit(1)
	}
}

func run(ordersPath, usersPath, baseDir, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if baseDir != "" {
		cfg.Paths.BaseDir = baseDir
	}

	paths, err := config.GetPaths(cfg.Paths.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create required directories: %w", err)
	}

	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = paths.GetLogPath("etl.log")
	} else if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(paths.BaseDir, cfg.Logging.FilePath)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if ordersPath, err = resolveOrdersPath(ordersPath, paths); err != nil {
		return err
	}
	if usersPath == "" {
		usersPath = paths.UsersCSV
	}

	logger.Info("Starting order analytics run",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("orders_path", ordersPath),
		slog.String("users_path", usersPath),
		slog.String("base_dir", paths.BaseDir))

	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		EnableTracing: cfg.Pipeline.EnableTracing,
		SampleRatio:   1.0,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	tracer, err := operations.NewStageTracer(providers)
	if err != nil {
		return fmt.Errorf("failed to create stage tracer: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := infrastructure.GenerateRunID()
	ctx = infrastructure.WithRunID(ctx, runID)
	logger = infrastructure.LoggerWithContext(ctx)

	state := operations.NewPipelineState(runID, ordersPath, usersPath)
	manager := operations.NewManager(logger, tracer, operations.NewPipelineStages(cfg, paths, logger))

	runErr := manager.Execute(ctx, state)

	providers.CollectAndLogMetrics(context.Background())
	if err := providers.Shutdown(context.Background()); err != nil {
		logger.Warn("telemetry shutdown failed", "error", err)
	}

	if runErr != nil {
		// Leave a failure record behind so a scheduler can tell a crashed
		// run from one that never started.
		meta := state.BuildRunMeta("failed", operations.PipelineConfigMap(cfg))
		if writeErr := exporter.WriteRunMeta(paths.RunMetaJSON, meta); writeErr != nil {
			logger.Error("failed to write failure run metadata", "error", writeErr)
		}
		return runErr
	}

	fmt.Printf("run %s completed: %s\n", runID, state.Summary())
	for _, warning := range state.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	return nil
}

// resolveOrdersPath falls back to the well-known orders file, then to the
// newest export dropped into the raw directory.
func resolveOrdersPath(ordersPath string, paths *config.Paths) (string, error) {
	if ordersPath != "" {
		return ordersPath, nil
	}

	if _, err := os.Stat(paths.OrdersCSV); err == nil {
		return paths.OrdersCSV, nil
	}

	latest, ok, err := files.NewDiscovery(paths.RawDir).LatestOrdersExport()
	if err != nil {
		return "", fmt.Errorf("failed to scan raw directory: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("no orders export found in %s; pass one with -orders", paths.RawDir)
	}
	return latest.Path, nil
}
