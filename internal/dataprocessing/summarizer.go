package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"ordercli/pkg/contracts/domain"
)

// CountrySummary is one row of the revenue-by-country business summary.
type CountrySummary struct {
	Country       string  `json:"country"`
	OrderCount    int     `json:"order_count"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// Summarizer aggregates the analytics table into business summaries.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer.
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// RevenueByCountry groups the analytics table by country and aggregates
// order count, total revenue and average order value, sorted by revenue
// descending. Rows without a country (unmatched, kept under the flag
// policy) land in an empty-country bucket rather than being hidden.
func (s *Summarizer) RevenueByCountry(ctx context.Context, records []domain.AnalyticsRecord) []CountrySummary {
	type bucket struct {
		count   int
		revenue float64
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		b, ok := buckets[r.Country]
		if !ok {
			b = &bucket{}
			buckets[r.Country] = b
		}
		b.count++
		b.revenue += r.Amount
	}

	summaries := make([]CountrySummary, 0, len(buckets))
	for country, b := range buckets {
		row := CountrySummary{
			Country:      country,
			OrderCount:   b.count,
			TotalRevenue: b.revenue,
		}
		if b.count > 0 {
			row.AvgOrderValue = b.revenue / float64(b.count)
		}
		summaries = append(summaries, row)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalRevenue != summaries[j].TotalRevenue {
			return summaries[i].TotalRevenue > summaries[j].TotalRevenue
		}
		return summaries[i].Country < summaries[j].Country
	})

	s.logger.InfoContext(ctx, "revenue summary generated",
		slog.Int("countries", len(summaries)),
		slog.Int("records", len(records)))

	return summaries
}

// AverageOrderValue returns the mean of the amount column across the
// analytics table; zero for an empty table.
func AverageOrderValue(records []domain.AnalyticsRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total / float64(len(records))
}
