package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"ordercli/internal/infrastructure"
)

// StageTracer provides OpenTelemetry instrumentation for pipeline stages.
type StageTracer struct {
	tracer trace.Tracer

	stageExecutions metric.Int64Counter
	stageDuration   metric.Float64Histogram
	rowsProcessed   metric.Int64Counter
	warningsTotal   metric.Int64Counter
}

// NewStageTracer creates a stage tracer on top of the run's providers.
func NewStageTracer(providers *infrastructure.OTelProviders) (*StageTracer, error) {
	executions, err := providers.Meter.Int64Counter("pipeline_stage_executions_total",
		metric.WithDescription("Total number of stage executions"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stage executions counter: %w", err)
	}

	duration, err := providers.Meter.Float64Histogram("pipeline_stage_duration_seconds",
		metric.WithDescription("Stage execution duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stage duration histogram: %w", err)
	}

	rows, err := providers.Meter.Int64Counter("pipeline_rows_processed_total",
		metric.WithDescription("Rows emitted by each stage"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rows counter: %w", err)
	}

	warnings, err := providers.Meter.Int64Counter("pipeline_warnings_total",
		metric.WithDescription("Data-quality warnings raised"))
	if err != nil {
		return nil, fmt.Errorf("failed to create warnings counter: %w", err)
	}

	return &StageTracer{
		tracer:          providers.Tracer,
		stageExecutions: executions,
		stageDuration:   duration,
		rowsProcessed:   rows,
		warningsTotal:   warnings,
	}, nil
}

// TracePipelineExecution creates the root span for a run.
func (t *StageTracer) TracePipelineExecution(ctx context.Context, runID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "pipeline.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.run_id", runID),
		),
	)
}

// TraceStageExecution creates a span for one stage and counts the start.
func (t *StageTracer) TraceStageExecution(ctx context.Context, runID, stageID string) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, fmt.Sprintf("pipeline.stage.%s", stageID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.run_id", runID),
			attribute.String("stage.id", stageID),
		),
	)

	t.stageExecutions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stageID)))

	return ctx, span
}

// RecordStageCompletion finalizes a stage span and records its metrics.
func (t *StageTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stageID string, duration time.Duration, rowsOut int, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("stage.status", status),
		attribute.Float64("stage.duration_seconds", duration.Seconds()),
		attribute.Int("stage.rows_out", rowsOut),
	)

	t.stageDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("stage", stageID),
			attribute.String("status", status)))

	if rowsOut > 0 {
		t.rowsProcessed.Add(ctx, int64(rowsOut),
			metric.WithAttributes(attribute.String("stage", stageID)))
	}

	infrastructure.AddSpanEvent(ctx, "stage.completed", map[string]interface{}{
		"stage.id":       stageID,
		"stage.status":   status,
		"stage.duration": duration.String(),
		"stage.rows_out": rowsOut,
	})

	if err != nil {
		infrastructure.RecordError(ctx, err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "stage completed")
	}
}

// RecordWarning counts a data-quality warning against the stage.
func (t *StageTracer) RecordWarning(ctx context.Context, stageID string) {
	t.warningsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("stage", stageID)))
}
