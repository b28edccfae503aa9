package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/storefront/internal/database"
)

const migrateTimeout = 2 * time.Minute

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggerService, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			if err := database.Migrate(ctx, log, cfg); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}
}
