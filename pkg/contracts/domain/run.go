package domain

import (
	"time"
)

// RunMeta is the run metadata document written next to the processed
// outputs (_run_meta.json). It records what went in, what came out, and the
// quality metrics of a single pipeline run so results stay reproducible.
type RunMeta struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     string    `json:"status"`

	RowsOrdersRaw int `json:"rows_in_orders_raw"`
	RowsUsers     int `json:"rows_in_users"`
	RowsClean     int `json:"rows_orders_clean"`
	RowsAnalytics int `json:"rows_out_analytics"`

	DroppedMissing    int     `json:"dropped_missing_fields"`
	DroppedDuplicates int     `json:"dropped_duplicate_order_id"`
	DroppedUnmatched  int     `json:"dropped_unmatched_user"`
	DropRate          float64 `json:"drop_rate"`
	JoinCoverage      float64 `json:"join_coverage"`

	WinsorLowerBound float64 `json:"winsor_lower_bound"`
	WinsorUpperBound float64 `json:"winsor_upper_bound"`
	AmountsClamped   int     `json:"amounts_clamped"`

	Warnings []string          `json:"warnings,omitempty"`
	Outputs  map[string]string `json:"output_files"`
	Config   map[string]string `json:"config"`
}
