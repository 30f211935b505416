package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercli/pkg/contracts/domain"
)

func recordsWithAmounts(amounts []float64) []domain.AnalyticsRecord {
	records := make([]domain.AnalyticsRecord, len(amounts))
	for i, a := range amounts {
		records[i] = domain.AnalyticsRecord{
			Order:   domain.Order{OrderID: "o", Amount: a},
			Matched: true,
		}
	}
	return records
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name       string
		percentile float64
		want       float64
	}{
		{name: "minimum", percentile: 0, want: 1},
		{name: "maximum", percentile: 1, want: 5},
		{name: "median", percentile: 0.5, want: 3},
		{name: "interpolated quartile", percentile: 0.25, want: 2},
		{name: "between ranks", percentile: 0.1, want: 1.4},
		{name: "below range clamps", percentile: -0.5, want: 1},
		{name: "above range clamps", percentile: 1.5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(sorted, tt.percentile), 1e-9)
		})
	}

	assert.Zero(t, Percentile(nil, 0.5))
	assert.Equal(t, 42.0, Percentile([]float64{42}, 0.99))
}

func TestWinsorizeClampsExtremesToBounds(t *testing.T) {
	records := recordsWithAmounts([]float64{10, 50, 100, 100, 900})

	report := Winsorize(context.Background(), nil, records, 0.01, 0.99)

	// Interpolated p1/p99 over the sorted amounts.
	assert.InDelta(t, 11.6, report.LowerBound, 1e-9)
	assert.InDelta(t, 868.0, report.UpperBound, 1e-9)
	assert.Equal(t, 1, report.ClampedLow)
	assert.Equal(t, 1, report.ClampedHigh)
	assert.Equal(t, 2, report.Clamped())

	// Extremes land exactly on the bounds; interior values are untouched.
	assert.Equal(t, report.LowerBound, records[0].AmountWinsor)
	assert.Equal(t, 50.0, records[1].AmountWinsor)
	assert.Equal(t, 100.0, records[2].AmountWinsor)
	assert.Equal(t, 100.0, records[3].AmountWinsor)
	assert.Equal(t, report.UpperBound, records[4].AmountWinsor)

	// Row count never changes; raw amounts survive for audit.
	require.Len(t, records, 5)
	assert.Equal(t, 10.0, records[0].Amount)
	assert.Equal(t, 900.0, records[4].Amount)
}

func TestWinsorizeIdempotentAtBounds(t *testing.T) {
	records := recordsWithAmounts([]float64{10, 50, 100, 100, 900})

	first := Winsorize(context.Background(), nil, records, 0.01, 0.99)

	want := make([]float64, len(records))
	for i, r := range records {
		want[i] = r.AmountWinsor
	}

	// Amounts are untouched, so bounds and clamps come out identical.
	second := Winsorize(context.Background(), nil, records, 0.01, 0.99)
	assert.Equal(t, first, second)
	for i, r := range records {
		assert.Equal(t, want[i], r.AmountWinsor)
	}
}

func TestWinsorizeUniformDistribution(t *testing.T) {
	records := recordsWithAmounts([]float64{100, 100, 100, 100})

	report := Winsorize(context.Background(), nil, records, 0.01, 0.99)

	assert.Equal(t, 100.0, report.LowerBound)
	assert.Equal(t, 100.0, report.UpperBound)
	assert.Zero(t, report.Clamped())
	for _, r := range records {
		assert.Equal(t, 100.0, r.AmountWinsor)
	}
}

func TestWinsorizeEmptyInput(t *testing.T) {
	report := Winsorize(context.Background(), nil, nil, 0.01, 0.99)
	assert.Zero(t, report.Clamped())
	assert.Zero(t, report.LowerBound)
	assert.Zero(t, report.UpperBound)
}

func TestWinsorizeFlagsIQROutliers(t *testing.T) {
	// 900 is far outside the Tukey fences of the remaining values.
	records := recordsWithAmounts([]float64{10, 50, 100, 100, 900})

	report := Winsorize(context.Background(), nil, records, 0.01, 0.99)

	assert.Equal(t, 1, report.Outliers)
	assert.False(t, records[0].AmountOutlier)
	assert.True(t, records[4].AmountOutlier)
}

func TestWinsorBounds(t *testing.T) {
	records := recordsWithAmounts([]float64{900, 10, 100, 50, 100}) // unsorted on purpose

	lower, upper := WinsorBounds(records, 0.01, 0.99)
	assert.InDelta(t, 11.6, lower, 1e-9)
	assert.InDelta(t, 868.0, upper, 1e-9)

	lower, upper = WinsorBounds(nil, 0.01, 0.99)
	assert.Zero(t, lower)
	assert.Zero(t, upper)
}
