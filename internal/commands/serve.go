package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/amortizer/internal/buildinfo"
	"github.com/iwvelando/amortizer/internal/logging"
	"github.com/iwvelando/amortizer/internal/server"
	"github.com/iwvelando/amortizer/pkg/constants"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		address    string
		open       bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the amortization web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}
			if cmd.Flags().Changed("open") {
				cfg.OpenBrowser = open
			}

			logger, err := logging.New(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flags.StringVar(&address, "address", constants.DefaultServerAddress, "listen address")
	flags.BoolVar(&open, "open", false, "open the web UI in a browser")
	flags.StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}

func serve(ctx context.Context, cfg *server.Config, logger *zap.Logger) error {
	srv := server.New(cfg, logger, buildinfo.Version)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed",
			zap.String("op", "commands.serve"),
			zap.Error(err),
		)
		return err
	}
	return nil
}
