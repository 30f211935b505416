package operations

import (
	"fmt"
	"sync"
	"time"

	"ordercli/internal/dataprocessing"
	"ordercli/pkg/contracts/domain"
)

// PipelineStatus represents the overall pipeline status
type PipelineStatus string

const (
	PipelineStatusPending   PipelineStatus = "pending"
	PipelineStatusRunning   PipelineStatus = "running"
	PipelineStatusCompleted PipelineStatus = "completed"
	PipelineStatusFailed    PipelineStatus = "failed"
)

// PipelineState carries everything a run produces, from the raw inputs
// through the reports, across the stages. Stages communicate exclusively
// through this state; no stage touches another stage directly.
type PipelineState struct {
	mu sync.RWMutex

	RunID     string         `json:"run_id"`
	Status    PipelineStatus `json:"status"`
	StartTime time.Time      `json:"start_time"`
	EndTime   *time.Time     `json:"end_time,omitempty"`

	// Input locations, fixed before the run starts.
	OrdersPath string `json:"orders_path"`
	UsersPath  string `json:"users_path"`

	// Stage states keyed by stage ID.
	Stages map[string]*StageState `json:"stages"`

	// Data flowing through the pipeline. Each field is written by exactly
	// one stage and read by the ones after it.
	RawOrders []domain.RawOrder        `json:"-"`
	Users     []domain.User            `json:"-"`
	Orders    []domain.Order           `json:"-"`
	Records   []domain.AnalyticsRecord `json:"-"`

	// Reports produced along the way.
	Missingness []dataprocessing.MissingnessEntry `json:"-"`
	CleanReport dataprocessing.CleanReport        `json:"clean_report"`
	JoinReport  dataprocessing.JoinReport         `json:"join_report"`
	WinsorRep   dataprocessing.WinsorReport       `json:"winsor_report"`
	Summaries   []dataprocessing.CountrySummary   `json:"-"`

	// Output file locations, recorded by the export stage.
	Outputs map[string]string `json:"output_files"`

	// Data-quality warnings accumulated across stages.
	Warnings []string `json:"warnings,omitempty"`

	// Error if the pipeline failed
	Error error `json:"error,omitempty"`
}

// NewPipelineState creates a pipeline state for one run.
func NewPipelineState(runID, ordersPath, usersPath string) *PipelineState {
	return &PipelineState{
		RunID:      runID,
		Status:     PipelineStatusPending,
		StartTime:  time.Now(),
		OrdersPath: ordersPath,
		UsersPath:  usersPath,
		Stages:     make(map[string]*StageState),
		Outputs:    make(map[string]string),
	}
}

// Start marks the pipeline as running
func (p *PipelineState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = PipelineStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the pipeline as completed
func (p *PipelineState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = PipelineStatusCompleted
}

// Fail marks the pipeline as failed
func (p *PipelineState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = PipelineStatusFailed
	p.Error = err
}

// GetStage returns the state of a specific stage
func (p *PipelineState) GetStage(stageID string) *StageState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Stages[stageID]
}

// SetStage updates the state of a specific stage
func (p *PipelineState) SetStage(stageID string, state *StageState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Stages[stageID] = state
}

// AddWarning appends a data-quality warning to the run.
func (p *PipelineState) AddWarning(warning string) {
	if warning == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Warnings = append(p.Warnings, warning)
}

// SetOutput records the location of a produced output file.
func (p *PipelineState) SetOutput(name, path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Outputs[name] = path
}

// BuildRunMeta assembles the run metadata document from the state. The
// config map is supplied by the caller so the document records the exact
// settings the run used.
func (p *PipelineState) BuildRunMeta(status string, config map[string]string) *domain.RunMeta {
	p.mu.RLock()
	defer p.mu.RUnlock()

	finished := time.Now()
	if p.EndTime != nil {
		finished = *p.EndTime
	}

	outputs := make(map[string]string, len(p.Outputs))
	for k, v := range p.Outputs {
		outputs[k] = v
	}

	return &domain.RunMeta{
		RunID:      p.RunID,
		StartedAt:  p.StartTime,
		FinishedAt: finished,
		Status:     status,

		RowsOrdersRaw: p.CleanReport.InputRows,
		RowsUsers:     len(p.Users),
		RowsClean:     p.CleanReport.OutputRows,
		RowsAnalytics: len(p.Records),

		DroppedMissing:    p.CleanReport.DroppedMissing,
		DroppedDuplicates: p.CleanReport.DroppedDuplicates,
		DroppedUnmatched:  p.JoinReport.InputRows - p.JoinReport.OutputRows,
		DropRate:          p.CleanReport.DropRate,
		JoinCoverage:      p.JoinReport.Coverage,

		WinsorLowerBound: p.WinsorRep.LowerBound,
		WinsorUpperBound: p.WinsorRep.UpperBound,
		AmountsClamped:   p.WinsorRep.Clamped(),

		Warnings: append([]string(nil), p.Warnings...),
		Outputs:  outputs,
		Config:   config,
	}
}

// Summary returns a short human-readable account of the run for the CLI.
func (p *PipelineState) Summary() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return fmt.Sprintf(
		"rows in: %d orders, %d users; rows out: %d; dropped: %d missing, %d duplicate, %d unmatched; join coverage: %.3f; amounts clamped: %d",
		p.CleanReport.InputRows,
		len(p.Users),
		len(p.Records),
		p.CleanReport.DroppedMissing,
		p.CleanReport.DroppedDuplicates,
		p.JoinReport.InputRows-p.JoinReport.OutputRows,
		p.JoinReport.Coverage,
		p.WinsorRep.Clamped(),
	)
}
