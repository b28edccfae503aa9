package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront product catalog server",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, &log, nil
}
