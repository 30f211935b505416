package operations

import (
	"context"
	"log/slog"
	"time"
)

// logPipelineStart logs the start of a pipeline run
func (m *Manager) logPipelineStart(ctx context.Context, state *PipelineState) {
	m.logger.InfoContext(ctx, "pipeline_start",
		slog.String("run_id", state.RunID),
		slog.String("orders_path", state.OrdersPath),
		slog.String("users_path", state.UsersPath),
		slog.Int("stages", len(m.stages)))
}

// logPipelineComplete logs the completion of a pipeline run
func (m *Manager) logPipelineComplete(ctx context.Context, state *PipelineState) {
	duration := time.Duration(0)
	if state.EndTime != nil {
		duration = state.EndTime.Sub(state.StartTime)
	}
	m.logger.InfoContext(ctx, "pipeline_complete",
		slog.String("run_id", state.RunID),
		slog.String("status", string(state.Status)),
		slog.Duration("duration", duration),
		slog.Int("rows_out", len(state.Records)),
		slog.Int("warnings", len(state.Warnings)))
}

// logPipelineError logs a pipeline failure
func (m *Manager) logPipelineError(ctx context.Context, state *PipelineState, err error) {
	m.logger.ErrorContext(ctx, "pipeline_error",
		slog.String("run_id", state.RunID),
		slog.String("error", err.Error()))
}

// logStageStart logs the start of a stage execution
func (m *Manager) logStageStart(ctx context.Context, stageID string) {
	m.logger.InfoContext(ctx, "stage_start",
		slog.String("stage", stageID))
}

// logStageComplete logs the completion of a stage execution
func (m *Manager) logStageComplete(ctx context.Context, stageID string, duration time.Duration) {
	m.logger.InfoContext(ctx, "stage_complete",
		slog.String("stage", stageID),
		slog.Duration("duration", duration))
}

// logStageError logs a stage failure
func (m *Manager) logStageError(ctx context.Context, stageID string, err error) {
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("stage", stageID),
		slog.String("error", err.Error()))
}
