// Package dataprocessing implements the core stages of the OrderPulse
// pipeline: loading raw orders/users exports, cleaning and type coercion,
// the orders→users left join, amount winsorization, and the
// revenue-by-country summary.
//
// The stages are pure with respect to their inputs: each takes a table,
// returns a new table plus a report, and never reaches back into earlier
// stages. File I/O lives in the parser (read side) and in internal/exporter
// (write side); everything in between operates on in-memory slices.
//
// Processing flow:
//
//	ParseOrdersCSV / ParseOrdersXLSX ─┐
//	                                  ├─→ Cleaner.Clean → Joiner.Join → Winsorize → Summarizer
//	ParseUsersCSV ────────────────────┘
package dataprocessing
