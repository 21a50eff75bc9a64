package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/amortizer/internal/config"
	"github.com/iwvelando/amortizer/internal/logging"
	"github.com/iwvelando/amortizer/internal/report"
	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/output"
	"github.com/iwvelando/amortizer/pkg/validation"
)

type scheduleOptions struct {
	configPath   string
	outputFormat string
	logLevel     string

	principal        float64
	interestRate     float64
	termYears        int
	startMonth       string
	homeValue        float64
	equityPercentage float64
	lumpSums         string
}

func newScheduleCommand() *cobra.Command {
	var opts scheduleOptions

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule for a loan",
		Long: `Print the month-by-month amortization schedule for a loan.

The loan is read from the configuration file when one exists; flags
override individual values from the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.Float64Var(&opts.principal, "principal", 0, "loan amount")
	flags.Float64Var(&opts.interestRate, "interest-rate", 0, "annual interest rate in percent")
	flags.IntVar(&opts.termYears, "term-years", 0, "loan term in years")
	flags.StringVar(&opts.startMonth, "start-month", "", "first payment month (MM/YYYY or YYYY-MM)")
	flags.Float64Var(&opts.homeValue, "home-value", 0, "home value used for the equity target")
	flags.Float64Var(&opts.equityPercentage, "equity-percentage", 0, "equity target as a percentage of the home value")
	flags.StringVar(&opts.lumpSums, "lump-sums", "", "extra payments as month:amount pairs, e.g. 12:1000,24:500")

	return cmd
}

func runSchedule(cmd *cobra.Command, opts scheduleOptions) error {
	conf, err := loadLoanConfiguration(opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	applyLoanFlags(cmd, opts, &conf.Loan)

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "commands.schedule"),
		)
	}

	params, lumpSums, skipped, err := conf.Loan.Parameters()
	if err != nil {
		logger.Error("invalid loan",
			zap.String("op", "commands.schedule"),
			zap.Error(err),
		)
		return fmt.Errorf("invalid loan: %w", err)
	}
	for _, warning := range skipped {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "commands.schedule"),
		)
	}

	result, err := report.GetReport(logger, params, lumpSums)
	if err != nil {
		return err
	}

	return output.Write(cmd.OutOrStdout(), outputFormat, result)
}

// loadLoanConfiguration reads the loan file. A missing file is only an
// error when the path was given explicitly; otherwise the form defaults
// and environment overrides are used.
func loadLoanConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			conf, err := config.LoadDefaultConfiguration()
			if err != nil {
				return nil, fmt.Errorf("failed to load default configuration: %w", err)
			}
			return conf, nil
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	return conf, nil
}

func applyLoanFlags(cmd *cobra.Command, opts scheduleOptions, loan *config.Loan) {
	flags := cmd.Flags()
	if flags.Changed("principal") {
		loan.Principal = opts.principal
	}
	if flags.Changed("interest-rate") {
		loan.InterestRate = opts.interestRate
	}
	if flags.Changed("term-years") {
		loan.TermYears = opts.termYears
	}
	if flags.Changed("start-month") {
		loan.StartMonth = opts.startMonth
	}
	if flags.Changed("home-value") {
		loan.HomeValue = opts.homeValue
	}
	if flags.Changed("equity-percentage") {
		loan.EquityPercentage = opts.equityPercentage
	}
	if flags.Changed("lump-sums") {
		loan.LumpSums = opts.lumpSums
	}
}
