// Recwarden - CCTV Recording Housekeeping Agent
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwarden

// Recwarden sits beside a Motion video-recording process, catalogs its
// recording directory over HTTP, correlates files with reported capture
// events, and evicts the oldest recordings when disk usage crosses the
// configured watermark.
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

	"github.com/tomtom215/recwarden/internal/api"
	"github.com/tomtom215/recwarden/internal/config"
	"github.com/tomtom215/recwarden/internal/feed"
	"github.com/tomtom215/recwarden/internal/housekeeping"
	"github.com/tomtom215/recwarden/internal/logging"
	"github.com/tomtom215/recwarden/internal/supervisor"
	"github.com/tomtom215/recwarden/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	host, err := os.Hostname()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to resolve hostname")
		host = "localhost"
	}

	logging.Info().
		Str("host", host).
		Str("motion_conf", cfg.Motion.ConfPath).
		Int("clean_percent", cfg.Storage.CleanPercent).
		Msg("Starting recwarden")

	// The keeper starts from the configured root; Motion's target_dir,
	// when present, replaces it on the first feed load below.
	keeper := housekeeping.New(cfg.Storage.Root, cfg.Storage.CleanPercent)

	feeds := feed.New(cfg.Motion.ConfPath, host, cfg.Motion.RescanInterval, keeper.SetRoot)
	if err := feeds.Load(); err != nil {
		// Motion may not be installed yet; keep serving with the
		// configured storage root and retry on the rescan interval.
		logging.Warn().Err(err).Str("path", cfg.Motion.ConfPath).Msg("Motion configuration unavailable")
	}

	handlers := api.NewHandlers(keeper, feeds, host, cfg.Server.ProxyName)
	router := api.NewRouter(handlers)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddHousekeepingService(services.NewTickerService(time.Second, keeper, feeds))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Stopped gracefully")
}
