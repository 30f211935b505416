// Package operations runs the order analytics pipeline as a sequence of
// stages: load, clean, join, winsorize, export. Each stage reads and
// writes the shared PipelineState; the Manager executes them in order,
// tracks per-stage status and timing, and stops at the first failure.
//
// Example usage:
//
//	stages := operations.NewPipelineStages(cfg, paths, logger)
//	manager := operations.NewManager(logger, tracer, stages)
//	state := operations.NewPipelineState(runID, ordersPath, usersPath)
//	if err := manager.Execute(ctx, state); err != nil {
//		return err
//	}
package operations
