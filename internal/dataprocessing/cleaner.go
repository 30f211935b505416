package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"

	"ordercli/pkg/contracts/domain"
)

// statusMap maps known status variants onto the canonical vocabulary.
// Unknown labels pass through unchanged after normalization.
var statusMap = map[string]string{
	"paid":     domain.StatusPaid,
	"pending":  domain.StatusPending,
	"refund":   domain.StatusRefund,
	"refunded": domain.StatusRefund,
}

// wsPattern collapses runs of whitespace inside status labels.
var wsPattern = regexp.MustCompile(`\s+`)

// orderDateLayouts are the timestamp formats accepted in raw exports,
// tried in order.
var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Cleaner normalizes raw orders and drops records missing critical fields.
// Drops are permanent: there is no retry or reconstruction path.
type Cleaner struct {
	logger            *slog.Logger
	dropRateThreshold float64
}

// NewCleaner creates a cleaner with the given drop-rate warning threshold.
func NewCleaner(logger *slog.Logger, dropRateThreshold float64) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger:            logger,
		dropRateThreshold: dropRateThreshold,
	}
}

// NormalizeStatus trims, lowercases and whitespace-collapses a status label,
// then maps known variants to the canonical vocabulary. Idempotent:
// normalizing an already-normalized value yields the same value.
func NormalizeStatus(s string) string {
	normalized := wsPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	if canonical, ok := statusMap[normalized]; ok {
		return canonical
	}
	return normalized
}

// parseOrderDate parses a raw timestamp cell against the accepted layouts.
func parseOrderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clean enforces types on the raw orders and drops rows with a missing or
// uncoercible critical field (order_id, user_id, amount, status,
// order_date), plus rows reusing an already-seen order_id. Cells that fail
// coercion count as missing, matching the loose-typing behavior of the
// source exports.
func (c *Cleaner) Clean(ctx context.Context, raw []domain.RawOrder) ([]domain.Order, CleanReport) {
	report := CleanReport{InputRows: len(raw)}

	orders := make([]domain.Order, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, r := range raw {
		orderID := strings.TrimSpace(r.OrderID)
		userID := strings.TrimSpace(r.UserID)
		status := NormalizeStatus(r.Status)

		amount, amountErr := cast.ToFloat64E(strings.TrimSpace(r.Amount))
		orderDate, dateOK := parseOrderDate(r.OrderDate)

		if orderID == "" || userID == "" || status == "" ||
			strings.TrimSpace(r.Amount) == "" || amountErr != nil || !dateOK {
			report.DroppedMissing++
			continue
		}

		if seen[orderID] {
			report.DroppedDuplicates++
			continue
		}
		seen[orderID] = true

		if amount < 0 {
			report.NegativeAmounts++
		}

		// Quantity is optional; a blank or malformed cell becomes zero.
		quantity, err := cast.ToInt64E(strings.TrimSpace(r.Quantity))
		if err != nil {
			quantity = 0
		}
		if quantity < 0 {
			report.NegativeQuantities++
		}

		orders = append(orders, domain.Order{
			OrderID:   orderID,
			UserID:    userID,
			Amount:    amount,
			Quantity:  quantity,
			Status:    status,
			OrderDate: orderDate,
		})
	}

	report.OutputRows = len(orders)
	if report.InputRows > 0 {
		report.DropRate = float64(report.Dropped()) / float64(report.InputRows)
	}

	if report.DropRate > c.dropRateThreshold {
		report.Warning = fmt.Sprintf("drop rate %.3f exceeds threshold %.3f", report.DropRate, c.dropRateThreshold)
		c.logger.WarnContext(ctx, "data quality warning",
			slog.Float64("drop_rate", report.DropRate),
			slog.Float64("threshold", c.dropRateThreshold),
			slog.Int("dropped", report.Dropped()))
	}

	c.logger.InfoContext(ctx, "orders cleaned",
		slog.Int("input_rows", report.InputRows),
		slog.Int("output_rows", report.OutputRows),
		slog.Int("dropped_missing", report.DroppedMissing),
		slog.Int("dropped_duplicates", report.DroppedDuplicates),
		slog.Int("negative_amounts", report.NegativeAmounts),
		slog.Int("negative_quantities", report.NegativeQuantities))

	return orders, report
}

// Missingness builds the per-column missingness report over the raw orders,
// sorted by missing fraction descending. A cell counts as missing when it
// is blank; typing failures are the cleaner's concern, not this report's.
func Missingness(raw []domain.RawOrder) []MissingnessEntry {
	counts := map[string]int{
		ColOrderID:   0,
		ColUserID:    0,
		ColAmount:    0,
		ColQuantity:  0,
		ColStatus:    0,
		ColOrderDate: 0,
	}

	for _, r := range raw {
		if strings.TrimSpace(r.OrderID) == "" {
			counts[ColOrderID]++
		}
		if strings.TrimSpace(r.UserID) == "" {
			counts[ColUserID]++
		}
		if strings.TrimSpace(r.Amount) == "" {
			counts[ColAmount]++
		}
		if strings.TrimSpace(r.Quantity) == "" {
			counts[ColQuantity]++
		}
		if strings.TrimSpace(r.Status) == "" {
			counts[ColStatus]++
		}
		if strings.TrimSpace(r.OrderDate) == "" {
			counts[ColOrderDate]++
		}
	}

	entries := make([]MissingnessEntry, 0, len(counts))
	for col, n := range counts {
		entry := MissingnessEntry{Column: col, NMissing: n}
		if len(raw) > 0 {
			entry.PMissing = float64(n) / float64(len(raw))
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PMissing != entries[j].PMissing {
			return entries[i].PMissing > entries[j].PMissing
		}
		return entries[i].Column < entries[j].Column
	})

	return entries
}
