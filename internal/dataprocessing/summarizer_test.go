package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercli/pkg/contracts/domain"
)

func analyticsRecord(country string, amount float64) domain.AnalyticsRecord {
	return domain.AnalyticsRecord{
		Order:   domain.Order{Amount: amount},
		Country: country,
		Matched: country != "",
	}
}

func TestRevenueByCountry(t *testing.T) {
	records := []domain.AnalyticsRecord{
		analyticsRecord("IQ", 100),
		analyticsRecord("DE", 300),
		analyticsRecord("IQ", 50),
		analyticsRecord("GB", 75),
	}

	summarizer := NewSummarizer(nil)
	summaries := summarizer.RevenueByCountry(context.Background(), records)

	require.Len(t, summaries, 3)

	// Sorted by revenue descending.
	assert.Equal(t, "DE", summaries[0].Country)
	assert.Equal(t, 300.0, summaries[0].TotalRevenue)
	assert.Equal(t, 1, summaries[0].OrderCount)
	assert.Equal(t, 300.0, summaries[0].AvgOrderValue)

	assert.Equal(t, "IQ", summaries[1].Country)
	assert.Equal(t, 150.0, summaries[1].TotalRevenue)
	assert.Equal(t, 2, summaries[1].OrderCount)
	assert.Equal(t, 75.0, summaries[1].AvgOrderValue)

	assert.Equal(t, "GB", summaries[2].Country)
}

func TestRevenueByCountryTiesSortedByName(t *testing.T) {
	records := []domain.AnalyticsRecord{
		analyticsRecord("NL", 100),
		analyticsRecord("BE", 100),
	}

	summaries := NewSummarizer(nil).RevenueByCountry(context.Background(), records)

	require.Len(t, summaries, 2)
	assert.Equal(t, "BE", summaries[0].Country)
	assert.Equal(t, "NL", summaries[1].Country)
}

func TestRevenueByCountryKeepsUnmatchedBucket(t *testing.T) {
	records := []domain.AnalyticsRecord{
		analyticsRecord("IQ", 100),
		analyticsRecord("", 40), // unmatched row kept under the flag policy
	}

	summaries := NewSummarizer(nil).RevenueByCountry(context.Background(), records)

	require.Len(t, summaries, 2)
	assert.Equal(t, "", summaries[1].Country)
	assert.Equal(t, 40.0, summaries[1].TotalRevenue)
}

func TestRevenueByCountryEmptyInput(t *testing.T) {
	summaries := NewSummarizer(nil).RevenueByCountry(context.Background(), nil)
	assert.Empty(t, summaries)
}

func TestAverageOrderValue(t *testing.T) {
	records := []domain.AnalyticsRecord{
		analyticsRecord("IQ", 10),
		analyticsRecord("DE", 20),
		analyticsRecord("GB", 30),
	}

	assert.Equal(t, 20.0, AverageOrderValue(records))
	assert.Zero(t, AverageOrderValue(nil))
}
