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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/config"
	"github.com/aretw0/algoviz/pkg/adapters/file"
	httpAdapter "github.com/aretw0/algoviz/pkg/adapters/http"
	"github.com/aretw0/algoviz/pkg/adapters/memory"
	"github.com/aretw0/algoviz/pkg/adapters/postgres"
	"github.com/aretw0/algoviz/pkg/adapters/redis"
	"github.com/aretw0/algoviz/pkg/observability"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP page server",
	Long: `Serves visualization pages. Open http://localhost:8080/?algorithm=BST in a
browser; add &debug=1 for debug logging of that page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		logger := newLogger(cfg)

		store, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		opts := []httpAdapter.Option{
			httpAdapter.WithContainerID(cfg.Container),
			httpAdapter.WithAlgorithmOptions(cfg.Algorithms),
			httpAdapter.WithCookieExpiry(cfg.Cookies.ExpiryDays),
			httpAdapter.WithIdleTimeout(cfg.PageIdleTimeout),
			httpAdapter.WithLogger(logger),
		}
		hooks := observability.LogHooks(logger)
		if cfg.Metrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks = observability.NewMetrics(reg).Hooks().Merge(hooks)
			opts = append(opts, httpAdapter.WithMetrics(reg))
		}
		opts = append(opts, httpAdapter.WithLifecycleHooks(hooks))

		server := httpAdapter.NewServer(newRegistry(cfg), store, opts...)

		sweepCtx, stopSweeper := context.WithCancel(cmd.Context())
		defer stopSweeper()
		go server.RunSweeper(sweepCtx, sweepInterval(cfg.PageIdleTimeout))
		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: server.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting algoviz server", "addr", srv.Addr, "store", cfg.Store.Driver, "metrics", cfg.Metrics)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("Error killing server", "error", err)
				}
			}
			server.Close(ctx)
			logger.Info("algoviz server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", config.DefaultAddr, "Address to listen on")
}

// sweepInterval checks for idle pages four times per timeout, at most once a second.
func sweepInterval(idle time.Duration) time.Duration {
	return max(idle/4, time.Second)
}

func newRegistry(cfg *config.Config) *registry.Registry {
	return algoviz.NewRegistry(newLogger(cfg))
}

// openStore builds the page store selected by the configuration.
func openStore(ctx context.Context, cfg *config.Config) (ports.PageStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Store.TTL)}
		if cfg.Store.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Store.Prefix))
		}
		store := redis.New(cfg.Store.Address, cfg.Store.Password, cfg.Store.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("redis store unavailable at %s: %w", cfg.Store.Address, err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close redis store", "error", err)
			}
		}, nil
	case config.StoreFile:
		return file.New(cfg.Store.Path), func() {}, nil
	case config.StorePostgres:
		store, err := postgres.Open(ctx, cfg.Store.DSN, postgres.WithTTL(cfg.Store.TTL))
		if err != nil {
			return nil, nil, fmt.Errorf("postgres store unavailable: %w", err)
		}
		return store, store.Close, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}
