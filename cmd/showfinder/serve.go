package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/diagnostics"
	grpcserver "github.com/Belphemur/ShowFinder/internal/grpc"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), config.GetConfig(), config.GetLogger())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve runs the web server, and the metrics and health servers when enabled,
// until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	logger.Info().
		Str("catalog_base_url", cfg.CatalogBaseURL).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Str("session_provider", cfg.Session.Provider).
		Msg("Application started with configuration")

	flush, err := diagnostics.Init(cfg, version)
	if err != nil {
		logger.Warn().Err(err).Msg("Error reporting disabled")
	}
	defer flush()

	catalog := client.NewClient(cfg)
	defer catalog.Close()

	store, err := session.NewStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	app := web.NewServer(catalog, session.NewManager(store, logger), cfg.Session.CookieName, logger)
	webServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 3)

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("serve metrics: %w", err)
			}
		}()
		defer shutdownHTTP(logger, "metrics", metricsServer)
	}

	if cfg.Health.Enabled {
		healthServer := grpcserver.NewHealthServer()
		address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Health.Port)
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", address, err)
		}
		go func() {
			logger.Info().Str("address", address).Msg("Starting gRPC health server")
			if err := healthServer.Serve(listener); err != nil {
				errs <- fmt.Errorf("serve gRPC health: %w", err)
			}
		}()
		defer stopHealth(logger, healthServer)
	}

	go func() {
		logger.Info().Str("address", webServer.Addr).Msg("Starting web server")
		if err := webServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("serve web: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	case err := <-errs:
		logger.Error().Err(err).Msg("Server failed, shutting down")
		shutdownHTTP(logger, "web", webServer)
		return err
	}

	shutdownHTTP(logger, "web", webServer)
	logger.Info().Msg("Server stopped gracefully")
	return nil
}

func shutdownHTTP(logger zerolog.Logger, name string, srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Str("server", name).Msg("Failed to shutdown server")
	}
}

// stopHealth reports NOT_SERVING and forces the stop if watchers keep the
// server busy past the shutdown timeout.
func stopHealth(logger zerolog.Logger, srv *grpcserver.HealthServer) {
	done := make(chan struct{})
	go func() {
		srv.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		logger.Warn().Msg("gRPC health server did not stop in time, forcing")
		srv.Stop()
	}
}
