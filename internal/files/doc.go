// Package files provides discovery of raw order exports on disk.
//
// The etl command can be pointed at explicit input files, but the common
// deployment drops exports into the raw data directory on a schedule. This
// package finds them there, preferring the most recent export when several
// have piled up.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.RawDir)
//	export, ok, err := discovery.LatestOrdersExport()
package files
