package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/mailsafe/internal/analyzer"
	"github.com/nao1215/mailsafe/internal/mailparse"
	"github.com/nao1215/mailsafe/internal/model"
	"github.com/nao1215/mailsafe/internal/report"
)

// stdinName is the argument that reads a message from standard input.
const stdinName = "-"

var (
	// errNoInputs is returned when analyze is run without arguments.
	errNoInputs = errors.New("no inputs provided (specify .eml or .json files, directories, or - for stdin)")

	// errFormatConflict is returned when both --json and --markdown are set.
	errFormatConflict = errors.New("--json and --markdown are mutually exclusive")

	// errVerdictThreshold is returned when a verdict reaches --fail-on.
	errVerdictThreshold = errors.New("verdict threshold reached")
)

// analyzeOptions holds the analyze command flags.
type analyzeOptions struct {
	noLinks    bool
	noGrammar  bool
	jsonReport bool
	markdown   bool
	output     string
	failOn     model.Verdict
}

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file|dir|-]...",
		Short: "Analyze stored messages",
		Long: `Analyze runs the same analysis as POST /api/analyze on stored messages.

Inputs may be RFC 5322 messages (.eml), JSON request bodies (.json),
directories containing such files, or - to read a message from stdin.

Examples:
  # Analyze one message
  mailsafe analyze suspicious.eml

  # Analyze a directory of messages, 8 at a time, as JSON
  mailsafe analyze --batch 8 --json ./inbox

  # Skip the grammar service and write a Markdown report
  mailsafe analyze --no-grammar --markdown -o report.md message.eml

  # Exit with an error when any message is suspicious
  mailsafe analyze --fail-on suspicious ./inbox`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().Bool("no-links", false, "Disable link heuristics and the threat list lookup")
	cmd.Flags().Bool("no-grammar", false, "Disable the grammar check")
	cmd.Flags().IntP("batch", "b", 0,
		"Number of concurrent analyses (default from configuration)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("fail-on", "",
		"Exit with an error when a verdict is at least this level (warning or suspicious)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errNoInputs
	}

	opts, err := parseAnalyzeFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("batch") {
		if cfg.Concurrency, err = cmd.Flags().GetInt("batch"); err != nil {
			return err
		}
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg, slog.LevelWarn)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	names, err := expandInputs(args)
	if err != nil {
		return err
	}

	items, err := analyzeInputs(ctx, newAnalyzer(cfg, logger), names, cmd.InOrStdin(), opts.checks(), cfg.Concurrency)
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), opts, cfg.Verbose, toEntries(items)); err != nil {
		return err
	}

	return exitStatus(items, opts.failOn)
}

// parseAnalyzeFlags reads and checks the analyze flags.
func parseAnalyzeFlags(cmd *cobra.Command) (analyzeOptions, error) {
	var (
		opts analyzeOptions
		err  error
	)
	flags := cmd.Flags()

	if opts.noLinks, err = flags.GetBool("no-links"); err != nil {
		return opts, err
	}
	if opts.noGrammar, err = flags.GetBool("no-grammar"); err != nil {
		return opts, err
	}
	if opts.jsonReport, err = flags.GetBool("json"); err != nil {
		return opts, err
	}
	if opts.markdown, err = flags.GetBool("markdown"); err != nil {
		return opts, err
	}
	if opts.jsonReport && opts.markdown {
		return opts, errFormatConflict
	}
	if opts.output, err = flags.GetString("output"); err != nil {
		return opts, err
	}

	failOn, err := flags.GetString("fail-on")
	if err != nil {
		return opts, err
	}
	if failOn != "" {
		opts.failOn = model.Verdict(strings.ToLower(failOn))
		if !opts.failOn.IsValid() || opts.failOn == model.VerdictSafe {
			return opts, fmt.Errorf("invalid --fail-on value %q (use warning or suspicious)", failOn)
		}
	}
	return opts, nil
}

// checks returns the analysis options selected by the flags.
func (o analyzeOptions) checks() model.Options {
	return model.Options{
		LinkScanner:    !o.noLinks,
		GrammarChecker: !o.noGrammar,
	}
}

// expandInputs replaces directories by the .eml and .json files they
// contain, sorted by name. Other arguments are kept as given.
func expandInputs(args []string) ([]string, error) {
	var names []string
	for _, arg := range args {
		if arg == stdinName {
			names = append(names, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			names = append(names, arg)
			continue
		}

		dirEntries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, de := range dirEntries {
			if de.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(de.Name())) {
			case ".eml", ".json":
				found = append(found, filepath.Join(arg, de.Name()))
			}
		}
		sort.Strings(found)
		names = append(names, found...)
	}

	if len(names) == 0 {
		return nil, errNoInputs
	}
	return names, nil
}

// analyzeInputs parses every input and analyzes the ones that parsed.
// Items are returned in input order; parse failures become failed items.
func analyzeInputs(ctx context.Context, a *analyzer.Analyzer, names []string, stdin io.Reader, checks model.Options, concurrency int) ([]analyzer.BatchItem, error) {
	items := make([]analyzer.BatchItem, len(names))
	var (
		payloads []analyzer.NamedPayload
		index    []int
	)

	for i, name := range names {
		items[i].Name = name

		var (
			p   *model.Payload
			err error
		)
		if name == stdinName {
			p, err = mailparse.Parse(stdin)
		} else {
			p, err = mailparse.ParseFile(name)
		}
		if err != nil {
			items[i].Err = err
			continue
		}

		payloads = append(payloads, analyzer.NamedPayload{Name: name, Payload: p})
		index = append(index, i)
	}

	analyzed, err := a.AnalyzeBatch(ctx, payloads, checks, concurrency)
	if err != nil {
		return nil, err
	}
	for j, item := range analyzed {
		items[index[j]] = item
	}
	return items, nil
}

// toEntries converts batch items to report entries.
func toEntries(items []analyzer.BatchItem) []report.Entry {
	entries := make([]report.Entry, len(items))
	for i, item := range items {
		entries[i] = report.Entry{Name: item.Name, Result: item.Result, Err: item.Err}
	}
	return entries
}

// writeReport renders entries to stdout, or to the --output file with a
// text summary on stdout.
func writeReport(stdout io.Writer, opts analyzeOptions, verbose bool, entries []report.Entry) error {
	var w report.Writer
	if opts.output == "" {
		w = newReportWriter(stdout, opts, verbose)
	} else {
		f, err := createReportFile(opts.output)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck // closed after the write below is checked

		w = newReportWriter(f, opts, verbose)
		if opts.jsonReport || opts.markdown {
			w = report.NewMultiWriter(w, report.NewSimpleWriter(stdout))
		}
	}

	// A single input keeps the exact API shape in JSON output.
	if len(entries) == 1 && entries[0].Err == nil {
		_, err := w.Write(entries[0].Result)
		return err
	}
	_, err := w.WriteEntries(entries)
	return err
}

// newReportWriter returns the writer for the selected format.
func newReportWriter(out io.Writer, opts analyzeOptions, verbose bool) report.Writer {
	switch {
	case opts.jsonReport:
		return report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case opts.markdown:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(verbose))
	}
}

// createReportFile creates path and its parent directories.
func createReportFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports quote message content, so keep them private to the owner.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// exitStatus reports failed inputs first, then the --fail-on threshold.
func exitStatus(items []analyzer.BatchItem, failOn model.Verdict) error {
	if err := analyzer.Failed(items); err != nil {
		return fmt.Errorf("some inputs could not be analyzed:\n%w", err)
	}

	if failOn == "" {
		return nil
	}
	for _, item := range items {
		if verdictRank(item.Result.Overall) >= verdictRank(failOn) {
			return fmt.Errorf("%w: %s is %s", errVerdictThreshold, item.Name, item.Result.Overall)
		}
	}
	return nil
}

// verdictRank orders verdicts from safe to suspicious.
func verdictRank(v model.Verdict) int {
	switch v {
	case model.VerdictSuspicious:
		return 2
	case model.VerdictWarning:
		return 1
	default:
		return 0
	}
}
