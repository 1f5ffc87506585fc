package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fachry26/acengcleansing/internal/config"
	"github.com/fachry26/acengcleansing/internal/server"
)

func newServeCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload-processing HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real environment variables win either way.
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logCfg := zap.NewProductionConfig()
			if debug {
				logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := logCfg.Build()
			if err != nil {
				return err
			}
			defer logger.Sync()

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			if cfg.Retention > 0 {
				janitor := server.NewJanitor(cfg.ProcessedDir, cfg.Retention, logger)
				janitor.Start()
				defer janitor.Stop()
			}

			return srv.Run()
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}
