package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"ordercli/pkg/contracts/domain"
)

// Percentile calculates the value at the given percentile (0..1) of a
// sorted slice using linear interpolation between closest ranks. Pure
// function: identical input yields identical output.
func Percentile(sorted []float64, percentile float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	if percentile <= 0 {
		return sorted[0]
	}
	if percentile >= 1 {
		return sorted[n-1]
	}

	index := percentile * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinsorBounds computes the clamp bounds over the amount distribution of
// the given records.
func WinsorBounds(records []domain.AnalyticsRecord, lowerPct, upperPct float64) (float64, float64) {
	if len(records) == 0 {
		return 0, 0
	}

	amounts := make([]float64, len(records))
	for i, r := range records {
		amounts[i] = r.Amount
	}
	sort.Float64s(amounts)

	return Percentile(amounts, lowerPct), Percentile(amounts, upperPct)
}

// Winsorize clamps each record's amount to the percentile bounds computed
// over the pre-clamp distribution, writing the result to AmountWinsor.
// Values are capped, never removed, so the row count is unchanged.
// Re-applying with the same bounds changes nothing.
//
// The IQR outlier flag (Tukey fences, k=1.5) is set alongside so analysts
// can still see which rows were extreme before the clamp.
func Winsorize(ctx context.Context, logger *slog.Logger, records []domain.AnalyticsRecord, lowerPct, upperPct float64) WinsorReport {
	if logger == nil {
		logger = slog.Default()
	}

	report := WinsorReport{}
	if len(records) == 0 {
		return report
	}

	lower, upper := WinsorBounds(records, lowerPct, upperPct)
	report.LowerBound = lower
	report.UpperBound = upper

	flagOutliersIQR(records, 1.5)

	for i := range records {
		switch {
		case records[i].Amount < lower:
			records[i].AmountWinsor = lower
			report.ClampedLow++
		case records[i].Amount > upper:
			records[i].AmountWinsor = upper
			report.ClampedHigh++
		default:
			records[i].AmountWinsor = records[i].Amount
		}
		if records[i].AmountOutlier {
			report.Outliers++
		}
	}

	logger.InfoContext(ctx, "amounts winsorized",
		slog.Float64("lower_bound", lower),
		slog.Float64("upper_bound", upper),
		slog.Int("clamped_low", report.ClampedLow),
		slog.Int("clamped_high", report.ClampedHigh),
		slog.Int("iqr_outliers", report.Outliers))

	return report
}

// flagOutliersIQR marks records whose amount falls outside the Tukey
// fences [Q1 - k*IQR, Q3 + k*IQR] of the pre-clamp distribution.
func flagOutliersIQR(records []domain.AnalyticsRecord, k float64) {
	if len(records) == 0 {
		return
	}

	amounts := make([]float64, len(records))
	for i, r := range records {
		amounts[i] = r.Amount
	}
	sort.Float64s(amounts)

	q1 := Percentile(amounts, 0.25)
	q3 := Percentile(amounts, 0.75)
	iqr := q3 - q1

	lowFence := q1 - k*iqr
	highFence := q3 + k*iqr

	for i := range records {
		records[i].AmountOutlier = records[i].Amount < lowFence || records[i].Amount > highFence
	}
}
