package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"prize-portal-service/internal/config"
	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logging.New(logging.Config{
				Level:   cfg.Logging.Level,
				Format:  cfg.Logging.Format,
				Service: "prize-portal-service",
				Version: version,
			})
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, logger)
			srv.Run(ctx, stop)
			return nil
		},
	}
}
