package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercli/internal/config"
)

func testWriter(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	return NewCSVWriter(paths), paths
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteSimpleCSV(t *testing.T) {
	writer, paths := testWriter(t)
	target := paths.GetReportPath("out.csv")

	err := writer.WriteSimpleCSV(target,
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	rows := readCSV(t, target)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestWriteSimpleCSV_BOM(t *testing.T) {
	writer, paths := testWriter(t)
	target := paths.GetReportPath("bom.csv")

	require.NoError(t, writer.WriteSimpleCSV(target, []string{"a"}, nil))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
}

func TestWriteCSV_CreatesMissingDirectory(t *testing.T) {
	writer, paths := testWriter(t)
	target := filepath.Join(paths.ReportsDir, "nested", "deep", "out.csv")

	err := writer.WriteCSV(target, WriteOptions{
		Headers: []string{"x"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)
	assert.FileExists(t, target)
}

func TestWriteCSV_ReplacesExistingFileAtomically(t *testing.T) {
	writer, paths := testWriter(t)
	target := paths.GetReportPath("replace.csv")

	require.NoError(t, os.WriteFile(target, []byte("stale content"), 0644))

	err := writer.WriteCSV(target, WriteOptions{
		Headers: []string{"fresh"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	rows := readCSV(t, target)
	assert.Equal(t, []string{"fresh"}, rows[0])

	// No temp files left behind.
	entries, err := os.ReadDir(paths.ReportsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStreamWriter(t *testing.T) {
	writer, paths := testWriter(t)
	target := paths.GetProcessedPath("stream.csv")

	stream, err := writer.CreateStreamWriter(target, []string{"id", "value"})
	require.NoError(t, err)

	// Nothing visible at the target until Close renames the temp file.
	assert.NoFileExists(t, target)

	require.NoError(t, stream.WriteRecord([]string{"r1", "10"}))
	require.NoError(t, stream.WriteRecord([]string{"r2", "20"}))
	require.NoError(t, stream.Close())

	rows := readCSV(t, target)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"r2", "20"}, rows[2])
}

func TestStreamWriter_AbortLeavesNothing(t *testing.T) {
	writer, paths := testWriter(t)
	target := paths.GetProcessedPath("aborted.csv")

	stream, err := writer.CreateStreamWriter(target, []string{"id"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"r1"}))
	stream.Abort()

	assert.NoFileExists(t, target)
	entries, err := os.ReadDir(paths.ProcessedDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
