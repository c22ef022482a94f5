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

	"github.com/spf13/cobra"

	"github.com/poeticgallery/gallery"
	"github.com/poeticgallery/gallery/config"
	"github.com/poeticgallery/gallery/filesystem"
	galleryhttp "github.com/poeticgallery/gallery/http"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the gallery HTTP server.

Development mode (--dev or env: development) binds 127.0.0.1 and logs in color.
Production binds 0.0.0.0 and logs JSON.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5000, "HTTP server port (env: PORT, GALLERY_SERVER_PORT)")
	serveCmd.Flags().String("host", "", "bind address (default: 127.0.0.1 in development, 0.0.0.0 otherwise)")
	serveCmd.Flags().Bool("dev", false, "run in development mode")
	serveCmd.Flags().String("index", "", "file served for / (default: index.html)")
	serveCmd.Flags().String("timezone", "", "IANA zone used for theme suggestions (default: local)")

	rootCmd.AddCommand(serveCmd)
}

// newServer wires the store, service and router for cfg. The returned close
// function releases the static root.
func newServer(cfg *config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	root, err := os.OpenRoot(cfg.Static.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("open static root: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = root.Close()
		return nil, nil, err
	}

	service := gallery.NewGalleryService(filesystem.NewAssetStore(root), gallery.ServiceConfig{
		Index:    cfg.Static.Index,
		Location: loc,
		Logger:   logger,
	})

	handlerConfig := galleryhttp.HandlerConfig{
		CORS:   cfg.CORS,
		CSP:    cfg.Security.CSP,
		Logger: logger,
	}
	if cfg.Metrics.Enabled {
		handlerConfig.Metrics = galleryhttp.NewMetrics()
		handlerConfig.MetricsPath = cfg.Metrics.Path
	}

	handler := galleryhttp.NewHandler(&handlerConfig, service)

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return server, func() { _ = root.Close() }, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger := slog.Default()

	server, closeRoot, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRoot()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", server.Addr,
			"env", cfg.Env,
			"static_root", cfg.Static.Root,
			"version", gallery.Version,
		)
		if cfg.Env.IsDevelopment() {
			logger.Warn("development mode, do not use in production")
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
