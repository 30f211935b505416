package config

// Application constants for the OrderPulse pipeline.
const (
	AppName    = "OrderPulse"
	AppVersion = "1.2.0"

	// Directory layout (relative to the base directory)
	DefaultDataDir      = "data"
	DefaultRawDir       = "data/raw"
	DefaultProcessedDir = "data/processed"
	DefaultReportsDir   = "reports"
	DefaultLogsDir      = "logs"

	// Well-known input files
	DefaultOrdersFile = "orders.csv"
	DefaultUsersFile  = "users.csv"

	// Well-known output files
	AnalyticsTableFile    = "analytics_table.csv"
	UsersCleanFile        = "users.csv"
	RunMetaFile           = "_run_meta.json"
	MissingnessReportFile = "missingness_summary.csv"
	RevenueSummaryFile    = "revenue_by_country.csv"

	// Data-quality defaults
	DefaultDropRateThreshold     = 0.10
	DefaultJoinCoverageThreshold = 0.98
	DefaultWinsorLowerPct        = 0.01
	DefaultWinsorUpperPct        = 0.99
)

// Unmatched-row policies for the join stage.
const (
	// UnmatchedDrop excludes orders with no matching user from the output.
	// The join coverage is then reported over the rows that survive.
	UnmatchedDrop = "drop"
	// UnmatchedFlag keeps unmatched orders with an empty country and
	// Matched=false.
	UnmatchedFlag = "flag"
)
