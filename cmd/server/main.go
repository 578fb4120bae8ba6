package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/vixducis/pour-decisions/internal/config"
	"github.com/vixducis/pour-decisions/internal/storage/sqlite"
	"github.com/vixducis/pour-decisions/pkg/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// run returns only after in-flight requests have drained, so deferred
// cleanup such as closing the store never races a handler.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logging.Setup(level)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	router := newRouter(cfg, store, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr: cfg.HTTPAddr(),
		// h2c serves HTTP/2 without TLS, which Connect clients expect
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, srv.ListenAndServe)
}

// serve runs listen until ctx is cancelled, then shuts srv down and waits
// for the drain to finish before returning.
func serve(ctx context.Context, srv *http.Server, listen func() error) error {
	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		drained <- srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Connect server starting", "address", srv.Addr)
	if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-drained; err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped gracefully")
	return nil
}
