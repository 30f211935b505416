package exporter

import (
	"fmt"
	"time"
)

// formatFloat formats a monetary value for CSV output with exactly 2
// decimal places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatRatio formats a rate or coverage figure with 4 decimal places.
func formatRatio(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatTime formats a timestamp as RFC 3339 so exported dates round-trip
// through the loader unchanged.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
