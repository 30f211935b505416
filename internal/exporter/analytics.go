package exporter

import (
	"log/slog"
	"strconv"

	"ordercli/internal/dataprocessing"
	"ordercli/pkg/contracts/domain"
)

// Analytics table column order. Kept stable so downstream notebooks can
// rely on positional access.
var analyticsHeaders = []string{
	"order_id",
	"user_id",
	"amount",
	"quantity",
	"status",
	"order_date",
	"country",
	"matched",
	"amount_winsor",
	"amount_outlier",
}

// WriteAnalyticsTable streams the analytics table to its well-known
// location under the processed directory.
func (w *CSVWriter) WriteAnalyticsTable(records []domain.AnalyticsRecord) error {
	stream, err := w.CreateStreamWriter(w.paths.AnalyticsTableCSV, analyticsHeaders)
	if err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.OrderID,
			r.UserID,
			formatFloat(r.Amount),
			formatInt(r.Quantity),
			r.Status,
			formatTime(r.OrderDate),
			r.Country,
			formatBool(r.Matched),
			formatFloat(r.AmountWinsor),
			formatBool(r.AmountOutlier),
		}
		if err := stream.WriteRecord(row); err != nil {
			stream.Abort()
			return err
		}
	}

	if err := stream.Close(); err != nil {
		return err
	}

	slog.Info("analytics table written",
		slog.String("path", w.paths.AnalyticsTableCSV),
		slog.Int("rows", len(records)))
	return nil
}

// WriteUsersTable writes the cleaned users table alongside the analytics
// table so a downstream consumer gets a matching snapshot of both inputs.
func (w *CSVWriter) WriteUsersTable(users []domain.User) error {
	records := make([][]string, len(users))
	for i, u := range users {
		records[i] = []string{u.UserID, u.Country}
	}
	return w.WriteSimpleCSV(w.paths.UsersCleanCSV, []string{"user_id", "country"}, records)
}

// WriteMissingnessReport writes the per-column missingness report.
func (w *CSVWriter) WriteMissingnessReport(entries []dataprocessing.MissingnessEntry) error {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{e.Column, strconv.Itoa(e.NMissing), formatRatio(e.PMissing)}
	}
	return w.WriteSimpleCSV(w.paths.MissingnessCSV, []string{"column", "n_missing", "p_missing"}, records)
}

// WriteCountrySummary writes the revenue-by-country business summary.
func (w *CSVWriter) WriteCountrySummary(summaries []dataprocessing.CountrySummary) error {
	records := make([][]string, len(summaries))
	for i, s := range summaries {
		records[i] = []string{
			s.Country,
			strconv.Itoa(s.OrderCount),
			formatFloat(s.TotalRevenue),
			formatFloat(s.AvgOrderValue),
		}
	}
	return w.WriteSimpleCSV(w.paths.RevenueSummaryCSV,
		[]string{"country", "order_count", "total_revenue", "avg_order_value"}, records)
}
