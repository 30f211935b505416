// Package exporter writes the pipeline outputs: the analytics table, the
// cleaned users table, the quality reports and the run metadata document.
//
// All files are written atomically (temp file plus rename) so a crashed run
// never leaves a half-written table behind, and CSV files carry a UTF-8 BOM
// so they open correctly in Excel.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	if err := writer.WriteAnalyticsTable(records); err != nil {
//		return err
//	}
//	if err := exporter.WriteRunMeta(paths.RunMetaJSON, meta); err != nil {
//		return err
//	}
package exporter
