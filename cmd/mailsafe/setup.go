package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/mailsafe/internal/analyzer"
	"github.com/nao1215/mailsafe/internal/config"
	"github.com/nao1215/mailsafe/internal/grammar"
	"github.com/nao1215/mailsafe/internal/log"
	"github.com/nao1215/mailsafe/internal/threatlist"
)

// loadConfig resolves the configuration for cmd: defaults, file, dotenv,
// environment, then the global flags. Command-specific flags are applied
// by the caller before Validate.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath})
	if err != nil {
		return nil, err
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the secure logger for cfg. base is the level used
// when verbose logging is off.
func setupLogger(w io.Writer, cfg *config.Config, base slog.Level) *slog.Logger {
	return log.New(w, log.Options{
		Level: log.Level(cfg.Verbose, base),
		JSON:  cfg.JSONLogs,
	})
}

// newAnalyzer wires the external clients and the analyzer from cfg.
func newAnalyzer(cfg *config.Config, logger *slog.Logger) *analyzer.Analyzer {
	threats := threatlist.New(cfg.ThreatListAPIKey,
		threatlist.WithEndpoint(cfg.ThreatListEndpoint),
		threatlist.WithTimeout(cfg.ThreatListTimeout),
		threatlist.WithClientInfo(cfg.ClientID, cfg.ClientVersion),
		threatlist.WithLogger(logger),
	)
	if !threats.Enabled() {
		logger.Info("threat list lookup disabled: no API key configured")
	}

	grammarClient := grammar.New(cfg.GrammarEndpoint,
		grammar.WithTimeout(cfg.GrammarTimeout),
		grammar.WithLogger(logger),
	)

	return analyzer.New(threats, grammarClient,
		analyzer.WithLogger(logger),
		analyzer.WithRequestTimeout(cfg.RequestTimeout),
	)
}

// validateConfig wraps a validation failure for display.
func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	return nil
}
