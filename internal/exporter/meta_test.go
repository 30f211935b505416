package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercli/internal/config"
	"ordercli/pkg/contracts/domain"
)

func TestWriteAndReadRunMeta(t *testing.T) {
	paths := config.NewPaths(t.TempDir())

	meta := &domain.RunMeta{
		RunID:         "run-123",
		StartedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt:    time.Date(2024, 3, 1, 10, 0, 5, 0, time.UTC),
		Status:        "success",
		RowsOrdersRaw: 10,
		RowsUsers:     4,
		RowsClean:     8,
		RowsAnalytics: 8,
		DropRate:      0.2,
		JoinCoverage:  1.0,
		Warnings:      []string{"drop rate 0.200 exceeds threshold 0.100"},
		Outputs: map[string]string{
			"analytics_table": paths.AnalyticsTableCSV,
		},
		Config: map[string]string{
			"unmatched_policy": config.UnmatchedDrop,
		},
	}

	require.NoError(t, WriteRunMeta(paths.RunMetaJSON, meta))

	got, err := ReadRunMeta(paths.RunMetaJSON)
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestWriteRunMeta_ReplacesPreviousRun(t *testing.T) {
	paths := config.NewPaths(t.TempDir())

	first := &domain.RunMeta{RunID: "run-1", Status: "failed"}
	second := &domain.RunMeta{RunID: "run-2", Status: "success"}

	require.NoError(t, WriteRunMeta(paths.RunMetaJSON, first))
	require.NoError(t, WriteRunMeta(paths.RunMetaJSON, second))

	got, err := ReadRunMeta(paths.RunMetaJSON)
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
}

func TestReadRunMeta_MissingFile(t *testing.T) {
	_, err := ReadRunMeta(config.NewPaths(t.TempDir()).RunMetaJSON)
	assert.Error(t, err)
}
