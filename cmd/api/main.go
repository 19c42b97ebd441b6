// cmd/api/main.go
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

	app "cinelog/internal"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication()
	if err := run(ctx, application); err != nil {
		application.Logger.Error("cinelog api stopped with error", "error", err)
		os.Exit(1)
	}
	application.Logger.Info("cinelog api stopped")
}

// run serves the users API until ctx is cancelled or the listener fails.
func run(ctx context.Context, application *app.Application) error {
	if err := application.Initialize(ctx); err != nil {
		_ = application.Shutdown(context.Background())
		return fmt.Errorf("initialize: %w", err)
	}

	server := &http.Server{
		Addr:         ":" + application.Config.Server.Port,
		Handler:      application.HTTPHandler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		application.Logger.Info("listening", "port", application.Config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		_ = application.Shutdown(context.Background())
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	application.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := application.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("app shutdown: %w", err))
	}
	return errors.Join(errs...)
}
