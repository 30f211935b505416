package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"ordercli/internal/config"
	apperrors "ordercli/internal/errors"
	"ordercli/pkg/contracts/domain"
)

// Joiner performs the left join of cleaned orders onto the users table.
type Joiner struct {
	logger            *slog.Logger
	unmatchedPolicy   string
	coverageThreshold float64
}

// NewJoiner creates a joiner with the given unmatched-row policy
// (config.UnmatchedDrop or config.UnmatchedFlag) and match-rate warning
// threshold.
func NewJoiner(logger *slog.Logger, unmatchedPolicy string, coverageThreshold float64) *Joiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Joiner{
		logger:            logger,
		unmatchedPolicy:   unmatchedPolicy,
		coverageThreshold: coverageThreshold,
	}
}

// buildUserIndex indexes users by user_id, rejecting duplicate keys. A
// users table that is not unique on user_id would multiply order rows in
// the join, so it is a validation error, not a warning.
func buildUserIndex(users []domain.User) (map[string]domain.User, error) {
	index := make(map[string]domain.User, len(users))
	for _, u := range users {
		if _, exists := index[u.UserID]; exists {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("users table is not unique on user_id: %q appears more than once", u.UserID))
		}
		index[u.UserID] = u
	}
	return index, nil
}

// Join left-joins orders onto users by user_id, attaching the country.
// Input order is preserved. Unmatched orders are dropped or flagged per the
// configured policy; either way they are counted and reported, never
// silently ignored.
func (j *Joiner) Join(ctx context.Context, orders []domain.Order, users []domain.User) ([]domain.AnalyticsRecord, JoinReport, error) {
	report := JoinReport{InputRows: len(orders)}

	index, err := buildUserIndex(users)
	if err != nil {
		return nil, report, err
	}

	records := make([]domain.AnalyticsRecord, 0, len(orders))
	for _, o := range orders {
		user, matched := index[o.UserID]
		if matched {
			report.Matched++
		} else {
			report.Unmatched++
			if j.unmatchedPolicy == config.UnmatchedDrop {
				continue
			}
		}

		records = append(records, domain.AnalyticsRecord{
			Order:   o,
			Country: user.Country,
			Matched: matched,
		})
	}

	report.OutputRows = len(records)
	if report.InputRows > 0 {
		report.MatchRate = float64(report.Matched) / float64(report.InputRows)
	}
	// Coverage is computed after the unmatched policy is applied: under the
	// drop policy the excluded rows do not take part in the ratio.
	if report.OutputRows > 0 {
		report.Coverage = float64(report.Matched) / float64(report.OutputRows)
	}

	if report.InputRows > 0 && report.MatchRate < j.coverageThreshold {
		report.Warning = fmt.Sprintf("join match rate %.3f below threshold %.3f: possible referential-integrity failure upstream",
			report.MatchRate, j.coverageThreshold)
		j.logger.WarnContext(ctx, "data quality warning",
			slog.Float64("match_rate", report.MatchRate),
			slog.Float64("threshold", j.coverageThreshold),
			slog.Int("unmatched", report.Unmatched))
	}

	j.logger.InfoContext(ctx, "orders joined to users",
		slog.Int("input_rows", report.InputRows),
		slog.Int("output_rows", report.OutputRows),
		slog.Int("matched", report.Matched),
		slog.Int("unmatched", report.Unmatched),
		slog.Float64("match_rate", report.MatchRate),
		slog.String("unmatched_policy", j.unmatchedPolicy))

	return records, report, nil
}
