package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mailsafe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailsafe",
		Short: "Phishing and content-safety analyzer for email",
		Long: `mailsafe analyzes email content and reports whether it looks safe,
deserves a warning, or is suspicious.

Each analysis combines link heuristics, an optional Google Safe Browsing
lookup, a phishing phrase dictionary and a LanguageTool grammar check.
Run it as an HTTP service with "serve" or on stored messages with "analyze".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .mailsafe in current or home directory)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
