package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tabledine/internal/catalog"
	"github.com/mmynk/tabledine/internal/config"
	"github.com/mmynk/tabledine/internal/metrics"
	"github.com/mmynk/tabledine/internal/middleware"
	"github.com/mmynk/tabledine/internal/rpc"
	"github.com/mmynk/tabledine/internal/service"
	"github.com/mmynk/tabledine/internal/session"
	"github.com/mmynk/tabledine/internal/storage"
	"github.com/mmynk/tabledine/internal/storage/sqlite"
	"github.com/mmynk/tabledine/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(v *viper.Viper, loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().Int("port", 0, "listen port")
	cmd.Flags().String("cors-origin", "", "allowed CORS origin")
	bindFlag(v, "port", cmd.Flags().Lookup("port"))
	bindFlag(v, "cors_origin", cmd.Flags().Lookup("cors-origin"))
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Setup(cfg.LogLevel)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.MenuFile != "" {
		if err := seedMenu(ctx, store, cfg.MenuFile); err != nil {
			return err
		}
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	handler := newHandler(store, sessions, cfg.CORSOrigin)

	server := &http.Server{
		Addr: cfg.Addr(),
		// Wrap with h2c for HTTP/2 without TLS (required for Connect)
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// newHandler builds the HTTP handler serving every Connect service plus /metrics.
func newHandler(store storage.Store, sessions *session.Manager, corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	// Metrics wraps everything so rejected sessions are counted too; logging runs
	// inside the session check so it can see the session ID.
	authed := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireSession(sessions),
		middleware.LoggingInterceptor(),
	)
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
	)

	// Register Connect services
	cartPath, cartHandler := rpc.NewCartServiceHandler(service.NewCartService(store, sessions), authed)
	mux.Handle(cartPath, cartHandler)

	orderPath, orderHandler := rpc.NewOrderServiceHandler(service.NewOrderService(store), authed)
	mux.Handle(orderPath, orderHandler)

	catalogPath, catalogHandler := rpc.NewCatalogServiceHandler(service.NewCatalogService(store), public)
	mux.Handle(catalogPath, catalogHandler)

	mux.Handle("/metrics", metrics.Handler())

	return loggingMiddleware(corsMiddleware(corsOrigin, mux))
}

func seedMenu(ctx context.Context, w catalog.Writer, path string) error {
	items, err := catalog.LoadSeed(path)
	if err != nil {
		return err
	}
	return catalog.Seed(ctx, w, items)
}
