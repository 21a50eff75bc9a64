// Package constants provides shared constants for the amortizer application.
package constants

// DateTimeLayout is the canonical month format used in output and in the
// JSON API.
const DateTimeLayout = "2006-01"

// FormMonthLayout is the MM/YYYY month format accepted from the loan form.
const FormMonthLayout = "01/2006"

// FormMonthParseLayout also accepts a single-digit month such as 4/2024.
const FormMonthParseLayout = "1/2006"

// MonthLabelLayout is the human-readable month label used in tables.
const MonthLabelLayout = "Jan 2006"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// DecimalPlaces is the number of decimal places kept for currency values
	DecimalPlaces = 2

	// MaxTermYears is the longest loan term the engine accepts
	MaxTermYears = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Logging constants
const (
	// DefaultLogLevel is used when neither the config nor the CLI sets one
	DefaultLogLevel = "info"

	// LogFormatJSON is the production log encoding
	LogFormatJSON = "json"

	// LogFormatConsole is the human-readable development log encoding
	LogFormatConsole = "console"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default loan configuration file name
	DefaultConfigFile = "amortizer.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of the loan file
	EnvPrefix = "AMORTIZER"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = "127.0.0.1:8050"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
