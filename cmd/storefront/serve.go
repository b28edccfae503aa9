package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/router"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
)

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on start-up")
	return cmd
}

func runServe(ctx context.Context, skipMigrations bool) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}

	if !skipMigrations {
		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		err := database.Migrate(migrateCtx, log, cfg)
		cancel()
		if err != nil {
			loggerService.Shutdown()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("failed to create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)

	r, err := router.NewRouter(srv, handlers)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("failed to create router: %w", err)
	}

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}
