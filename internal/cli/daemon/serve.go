// Package daemon holds the deepsearchd commands.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/deepsearch/internal/api/handlers"
	"github.com/cloo-solutions/deepsearch/internal/cache"
	"github.com/cloo-solutions/deepsearch/internal/config"
	"github.com/cloo-solutions/deepsearch/internal/logging"
	"github.com/cloo-solutions/deepsearch/internal/probe"
	"github.com/cloo-solutions/deepsearch/internal/provider"
	"github.com/cloo-solutions/deepsearch/internal/server"
	"github.com/cloo-solutions/deepsearch/internal/service"
	"github.com/cloo-solutions/deepsearch/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the deep search API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Debug, os.Stdout)
	if cfg.Environment == "development" {
		logger = logging.Console(cfg.Debug)
	}

	flush := func() {}
	if cfg.HasSentry() {
		flush = telemetry.Init(telemetry.Config{
			DSN:         cfg.SentryDSN,
			Environment: cfg.Environment,
			Debug:       cfg.Debug,
		}, logger)
	}
	defer flush()

	if portFlag, _ := cmd.Flags().GetString("port"); cmd.Flags().Changed("port") && portFlag != "" {
		cfg.Port = portFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := BuildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exited")
	return nil
}

// BuildHandler wires the provider client, validator, service and optional
// cache into the HTTP router. The returned cleanup releases the cache
// connection, if any.
func BuildHandler(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	client, err := provider.NewClient(provider.Config{
		BaseURL:           cfg.SearchBaseURL,
		Timeout:           cfg.SearchTimeout,
		RequestsPerSecond: cfg.ProviderRPS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create search provider client: %w", err)
	}

	validator := probe.NewValidator(cfg.ProbePolicy(), logger)

	deepSearch := service.NewDeepSearchService(client, validator, service.DeepSearchConfig{
		Credentials:      cfg.Credentials(),
		PageSize:         cfg.SearchPageSize,
		ProbeConcurrency: cfg.ProbeConcurrency,
	}, logger)

	var svc handlers.DeepSearchService = deepSearch
	cleanup := func() {}

	if cfg.HasRedis() {
		store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, serving without cache")
		} else {
			logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", store.TTL()).Msg("result cache enabled")
			svc = cache.NewSearcher(deepSearch, store, logger)
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Warn().Err(err).Msg("failed to close redis")
				}
			}
		}
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:            logger,
		DeepSearchHandler: handlers.NewDeepSearchHandler(svc, logger),
	})

	return router, cleanup, nil
}
