package domain

// AnalyticsRecord is one row of the analytics table: a cleaned order joined
// to its user, with the winsorized amount column alongside the original.
type AnalyticsRecord struct {
	Order

	// Country comes from the users table. Empty when the order did not
	// match a user and the unmatched policy keeps flagged rows.
	Country string `json:"country,omitempty"`

	// Matched reports whether the join found a user for this order.
	Matched bool `json:"matched"`

	// AmountWinsor is Amount clamped to the configured percentile bounds.
	AmountWinsor float64 `json:"amount_winsor"`

	// AmountOutlier marks amounts outside the IQR fences (k=1.5) of the
	// pre-clamp distribution. Flagged rows are kept, never removed.
	AmountOutlier bool `json:"amount_outlier"`
}
