package operations

import (
	"context"
	"sync"
	"time"
)

// Stage is a single step of the pipeline.
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Execute runs the stage with the given context and pipeline state
	Execute(ctx context.Context, state *PipelineState) error

	// Validate checks if the stage can be executed with the current state
	Validate(state *PipelineState) error
}

// Well-known stage IDs, in execution order.
const (
	StageIDLoad      = "load"
	StageIDClean     = "clean"
	StageIDJoin      = "join"
	StageIDWinsorize = "winsorize"
	StageIDExport    = "export"
)

// StageStatus represents the current status of a stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageState represents the runtime state of a stage
type StageState struct {
	mu        sync.RWMutex
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    StageStatus `json:"status"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     error       `json:"error,omitempty"`
}

// NewStageState creates a new stage state with default values
func NewStageState(id, name string) *StageState {
	return &StageState{
		ID:     id,
		Name:   name,
		Status: StageStatusPending,
	}
}

// Start marks the stage as active and sets the start time
func (s *StageState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

// Complete marks the stage as completed and sets the end time
func (s *StageState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
}

// Fail marks the stage as failed with the given error
func (s *StageState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Error = err
}

// Skip marks the stage as skipped with the given reason
func (s *StageState) Skip(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusSkipped
	s.Message = reason
}

// GetStatus returns the current status.
func (s *StageState) GetStatus() StageStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// Duration returns the duration of the stage execution
func (s *StageState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// BaseStage provides common functionality for Stage implementations
type BaseStage struct {
	id   string
	name string
}

// NewBaseStage creates a new base stage
func NewBaseStage(id, name string) BaseStage {
	return BaseStage{id: id, name: name}
}

// ID returns the stage ID
func (b *BaseStage) ID() string {
	return b.id
}

// Name returns the stage name
func (b *BaseStage) Name() string {
	return b.name
}

// Validate provides a default validation that always passes
func (b *BaseStage) Validate(state *PipelineState) error {
	return nil
}
