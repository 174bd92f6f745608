package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/LabelSheet/internal/application"
	"github.com/piwi3910/LabelSheet/internal/logging"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			app, err := application.New(cfg, logger)
			if err != nil {
				logger.Error("failed to initialize application", zap.Error(err))
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.port, "port", "", "HTTP port exposed by the service")
	cmd.Flags().Float64Var(&opts.rateLimitRPS, "rate-limit-rps", 0, "Requests per second allowed (0 disables)")
	cmd.Flags().IntVar(&opts.rateLimitBurst, "rate-limit-burst", 0, "Burst capacity for the rate limiter (0 disables)")
	return cmd
}
