// Command api runs the TutorLens HTTP API.
//
// Startup order: config, logger, migrations, server container (db,
// redis, jobs), repositories, services, middlewares, handlers, router,
// then listen. Shutdown drains inflight requests and closes everything
// in reverse.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tutorlens/tutorlens/internal/config"
	"github.com/tutorlens/tutorlens/internal/database"
	"github.com/tutorlens/tutorlens/internal/handler"
	"github.com/tutorlens/tutorlens/internal/logger"
	"github.com/tutorlens/tutorlens/internal/middleware"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/router"
	"github.com/tutorlens/tutorlens/internal/server"
	"github.com/tutorlens/tutorlens/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, loggerService := logger.New(cfg)

	migrateCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.Migrate(migrateCtx, log, cfg); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	middlewares := middleware.NewMiddlewares(srv, services.Auth)
	handlers := handler.NewHandlers(srv, services)

	e := router.Setup(handlers, middlewares)
	srv.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown cleanly: %w", err)
	}

	if loggerService != nil {
		loggerService.Shutdown(5 * time.Second)
	}

	log.Info().Msg("shutdown complete")
	return nil
}
