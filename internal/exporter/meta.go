package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ordercli/pkg/contracts/domain"
)

// WriteRunMeta writes the run metadata document as indented JSON, using
// the same temp-plus-rename discipline as the CSV writers.
func WriteRunMeta(fullPath string, meta *domain.RunMeta) error {
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run metadata: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write run metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	slog.Info("run metadata written",
		slog.String("path", fullPath),
		slog.String("run_id", meta.RunID),
		slog.String("status", meta.Status))
	return nil
}

// ReadRunMeta loads a run metadata document, for the report command and
// for tests.
func ReadRunMeta(fullPath string) (*domain.RunMeta, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read run metadata: %w", err)
	}
	var meta domain.RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse run metadata: %w", err)
	}
	return &meta, nil
}
