// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/amortizer/pkg/constants"
)

var (
	outputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON}
	logLevels     = []string{"debug", "info", "warn", "warning", "error"}
	logFormats    = []string{constants.LogFormatJSON, constants.LogFormatConsole}
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	return oneOf("output format", format, outputFormats)
}

// ValidateLogLevel checks if the log level is one of the supported levels.
func ValidateLogLevel(level string) error {
	return oneOf("log level", level, logLevels)
}

// ValidateLogFormat checks if the log format is one of the supported encodings.
func ValidateLogFormat(format string) error {
	return oneOf("log format", format, logFormats)
}

func oneOf(what, value string, allowed []string) error {
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return fmt.Errorf("expected %s of %s, got %q", what, strings.Join(allowed, ", "), value)
}
