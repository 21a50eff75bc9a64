// Package config defines the data structures related to configuration and
// includes functions for loading and validating the loan file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for amortizer.
type Configuration struct {
	Loan    Loan          `yaml:"loan"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Values can be overridden with AMORTIZER_* environment
// variables, e.g. AMORTIZER_LOAN_PRINCIPAL. Loan keys the file leaves out
// take the DefaultLoan values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// LoadDefaultConfiguration builds the configuration used when there is no
// loan file: DefaultLoan plus any AMORTIZER_* environment overrides.
func LoadDefaultConfiguration() (*Configuration, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every scalar key so AutomaticEnv can override it
// even when the file does not mention it.
func setDefaults(v *viper.Viper) {
	loan := DefaultLoan()
	v.SetDefault("loan.principal", loan.Principal)
	v.SetDefault("loan.interestRate", loan.InterestRate)
	v.SetDefault("loan.termYears", loan.TermYears)
	v.SetDefault("loan.startMonth", loan.StartMonth)
	v.SetDefault("loan.homeValue", loan.HomeValue)
	v.SetDefault("loan.equityPercentage", loan.EquityPercentage)
	v.SetDefault("loan.lumpSums", loan.LumpSums)

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")

	v.SetDefault("output.format", "")
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Problems that make the loan impossible to amortize
// are reported as errors by Loan.Parameters instead.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	return append(warnings, c.Loan.Warnings()...)
}
