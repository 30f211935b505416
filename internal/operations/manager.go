package operations

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"ordercli/internal/infrastructure"
)

// Manager executes the pipeline stages in order. Stages run sequentially;
// the first failure marks the remaining stages skipped and fails the run.
type Manager struct {
	logger *slog.Logger
	tracer *StageTracer
	stages []Stage
}

// NewManager creates a pipeline manager. The tracer may be nil, in which
// case stages run without spans or metrics.
func NewManager(logger *slog.Logger, tracer *StageTracer, stages []Stage) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger: logger,
		tracer: tracer,
		stages: stages,
	}
}

// Stages returns the configured stage sequence.
func (m *Manager) Stages() []Stage {
	return m.stages
}

// Execute runs every stage against the state. The context carries the run
// ID so stage logs correlate with the run metadata document.
func (m *Manager) Execute(ctx context.Context, state *PipelineState) error {
	ctx = infrastructure.WithRunID(ctx, state.RunID)

	var rootSpan trace.Span
	if m.tracer != nil {
		ctx, rootSpan = m.tracer.TracePipelineExecution(ctx, state.RunID)
		defer rootSpan.End()
	}

	state.Start()
	m.logPipelineStart(ctx, state)

	for i, stage := range m.stages {
		if err := m.runStage(ctx, stage, state); err != nil {
			state.Fail(err)
			m.logPipelineError(ctx, state, err)
			m.skipRemaining(state, i+1)
			return err
		}

		if err := ctx.Err(); err != nil {
			cancelErr := fmt.Errorf("pipeline cancelled after stage %s: %w", stage.ID(), err)
			state.Fail(cancelErr)
			m.logPipelineError(ctx, state, cancelErr)
			m.skipRemaining(state, i+1)
			return cancelErr
		}
	}

	state.Complete()
	m.logPipelineComplete(ctx, state)
	return nil
}

// runStage validates and executes one stage, tracking its state, span and
// metrics.
func (m *Manager) runStage(ctx context.Context, stage Stage, state *PipelineState) error {
	stageState := NewStageState(stage.ID(), stage.Name())
	state.SetStage(stage.ID(), stageState)

	if err := stage.Validate(state); err != nil {
		stageState.Fail(err)
		m.logStageError(ctx, stage.ID(), err)
		return err
	}

	stageCtx := ctx
	var span trace.Span
	if m.tracer != nil {
		stageCtx, span = m.tracer.TraceStageExecution(ctx, state.RunID, stage.ID())
		defer span.End()
	}

	stageState.Start()
	m.logStageStart(ctx, stage.ID())

	warningsBefore := len(state.Warnings)
	err := stage.Execute(stageCtx, state)
	duration := stageState.Duration()

	if m.tracer != nil {
		for range state.Warnings[warningsBefore:] {
			m.tracer.RecordWarning(stageCtx, stage.ID())
		}
		m.tracer.RecordStageCompletion(stageCtx, span, stage.ID(), duration, stageRowsOut(stage.ID(), state), err)
	}

	if err != nil {
		stageState.Fail(err)
		m.logStageError(ctx, stage.ID(), err)
		return err
	}

	stageState.Complete()
	m.logStageComplete(ctx, stage.ID(), duration)
	return nil
}

// skipRemaining marks every not-yet-run stage as skipped.
func (m *Manager) skipRemaining(state *PipelineState, from int) {
	for _, stage := range m.stages[from:] {
		stageState := NewStageState(stage.ID(), stage.Name())
		stageState.Skip("previous stage failed")
		state.SetStage(stage.ID(), stageState)
	}
}

// stageRowsOut reports how many rows a stage left in the state, for the
// rows-processed metric.
func stageRowsOut(stageID string, state *PipelineState) int {
	switch stageID {
	case StageIDLoad:
		return len(state.RawOrders)
	case StageIDClean:
		return len(state.Orders)
	case StageIDJoin, StageIDWinsorize, StageIDExport:
		return len(state.Records)
	default:
		return 0
	}
}
