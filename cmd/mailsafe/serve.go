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

	"github.com/nao1215/mailsafe/internal/config"
	"github.com/nao1215/mailsafe/internal/server"
)

// shutdownTimeout bounds the wait for in-flight requests on shutdown.
const shutdownTimeout = 25 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP service",
		Long: `Serve starts the HTTP service.

Endpoints:
  GET  /             liveness probe
  POST /api/analyze  analyze {"payload": {...}, "options": {...}}

Examples:
  # Listen on the configured port (default 3000)
  mailsafe serve

  # Listen on port 8080 with JSON logs
  mailsafe serve --port 8080 --json-logs

Environment variables:
  PORT                   listen port
  SAFE_BROWSING_API_KEY  enables the Google Safe Browsing lookup
  LANGUAGETOOL_URL       grammar service endpoint`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().IntP("port", "p", config.DefaultPort, "HTTP listen port")
	cmd.Flags().Bool("json-logs", false, "Write logs as JSON")
	cmd.Flags().Duration("request-timeout", config.DefaultRequestTimeout,
		"Upper bound for one analysis (0 disables)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg, slog.LevelInfo)
	slog.SetDefault(logger)

	if cfg.ConfigFilePath != "" {
		logger.Info("configuration loaded", "path", cfg.ConfigFilePath)
	}

	srv := server.New(cfg, newAnalyzer(cfg, logger), logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, srv, fmt.Sprintf(":%d", cfg.Port), logger)
}

// buildServeConfig loads the configuration and applies the serve flags that
// were set explicitly.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		if cfg.Port, err = flags.GetInt("port"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("json-logs") {
		if cfg.JSONLogs, err = flags.GetBool("json-logs"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("request-timeout") {
		if cfg.RequestTimeout, err = flags.GetDuration("request-timeout"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *server.Server, addr string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
