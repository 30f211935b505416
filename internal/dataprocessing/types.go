package dataprocessing

// Orders export column names. Header matching is case-insensitive and
// tolerates extra columns in any order; created_at is accepted as an alias
// for order_date (older exports use it).
const (
	ColOrderID   = "order_id"
	ColUserID    = "user_id"
	ColAmount    = "amount"
	ColQuantity  = "quantity"
	ColStatus    = "status"
	ColOrderDate = "order_date"
	ColCreatedAt = "created_at"
	ColCountry   = "country"
)

// CleanReport summarizes what the cleaning stage did to the raw orders.
type CleanReport struct {
	InputRows  int `json:"input_rows"`
	OutputRows int `json:"output_rows"`

	// DroppedMissing counts rows dropped for a missing or uncoercible
	// critical field (order_id, user_id, amount, status, order_date).
	DroppedMissing int `json:"dropped_missing"`

	// DroppedDuplicates counts rows dropped because an earlier row already
	// used the same order_id.
	DroppedDuplicates int `json:"dropped_duplicates"`

	// NegativeAmounts counts rows whose amount is below zero. They are
	// kept (refund modeling) but reported as a quality finding.
	NegativeAmounts int `json:"negative_amounts"`

	// NegativeQuantities counts rows whose quantity is below zero. They
	// are kept and reported alongside NegativeAmounts.
	NegativeQuantities int `json:"negative_quantities"`

	// DropRate is total drops over input rows; zero for an empty input.
	DropRate float64 `json:"drop_rate"`

	// Warning carries the data-quality message when DropRate exceeds the
	// configured threshold. Empty otherwise.
	Warning string `json:"warning,omitempty"`
}

// Dropped returns the total number of rows removed by the cleaner.
func (r CleanReport) Dropped() int {
	return r.DroppedMissing + r.DroppedDuplicates
}

// JoinReport summarizes the orders→users join.
type JoinReport struct {
	InputRows  int `json:"input_rows"`
	OutputRows int `json:"output_rows"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`

	// MatchRate is matched over input rows. This is the
	// referential-integrity signal the coverage threshold tests.
	MatchRate float64 `json:"match_rate"`

	// Coverage is the join-success ratio over the rows that remain after
	// the configured unmatched policy is applied. Under the drop policy
	// unmatched rows are excluded before the ratio is computed.
	Coverage float64 `json:"coverage"`

	// Warning carries the referential-integrity message when MatchRate
	// falls below the configured threshold. Empty otherwise.
	Warning string `json:"warning,omitempty"`
}

// WinsorReport summarizes the outlier clamping of the amount column.
type WinsorReport struct {
	LowerBound  float64 `json:"lower_bound"`
	UpperBound  float64 `json:"upper_bound"`
	ClampedLow  int     `json:"clamped_low"`
	ClampedHigh int     `json:"clamped_high"`
	Outliers    int     `json:"iqr_outliers"`
}

// Clamped returns the total number of amounts moved to a bound.
func (r WinsorReport) Clamped() int {
	return r.ClampedLow + r.ClampedHigh
}

// MissingnessEntry is one row of the per-column missingness report.
type MissingnessEntry struct {
	Column   string  `json:"column"`
	NMissing int     `json:"n_missing"`
	PMissing float64 `json:"p_missing"`
}
