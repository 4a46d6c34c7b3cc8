// Package main runs the HTTP API server for starting runs and fetching
// their results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-newsdesk/internal/domain"
	"github.com/ahrav/go-newsdesk/internal/launcher"
	"github.com/ahrav/go-newsdesk/internal/server"
	"github.com/ahrav/go-newsdesk/internal/styles"
)

var (
	listenAddr      = flag.String("listen", ":8080", "HTTP listen address")
	stylesDir       = flag.String("styles-dir", "", "Directory of style profile YAML files (default: built-in styles)")
	temporalAddress = flag.String("temporal-address", client.DefaultHostPort, "Temporal frontend address")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	registry := styles.Default()
	if *stylesDir != "" {
		var err error
		registry, err = styles.LoadDir(*stylesDir)
		if err != nil {
			return fmt.Errorf("failed to load style profiles from %s: %w", *stylesDir, err)
		}
	}

	tc, err := client.Dial(client.Options{HostPort: *temporalAddress})
	if err != nil {
		return fmt.Errorf("failed to connect to Temporal: %w", err)
	}
	defer tc.Close()

	l := launcher.New(tc, registry, domain.DefaultEngineConfig())
	srv := &http.Server{
		Addr:              *listenAddr,
		Handler:           server.New(l).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", *listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}
