package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/mailsafe/internal/model"
)

// SimpleWriter outputs human-readable text for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose lists every grammar issue instead of only the count.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs a single result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder
	w.writeResult(&sb, result)
	return io.WriteString(w.output, sb.String())
}

// WriteEntries outputs one block per input followed by a verdict summary.
func (w *SimpleWriter) WriteEntries(entries []Entry) (int, error) {
	var sb strings.Builder

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("== %s\n", e.Name))
		if e.Err != nil || e.Result == nil {
			msg := "no result"
			if e.Err != nil {
				msg = e.Err.Error()
			}
			sb.WriteString(fmt.Sprintf("  ERROR: %s\n\n", msg))
			continue
		}
		w.writeResult(&sb, e.Result)
	}

	if len(entries) > 1 {
		c := countVerdicts(entries)
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%d analyzed: %d suspicious, %d warning, %d safe, %d failed\n",
			len(entries), c.suspicious, c.warning, c.safe, c.failed))
	}

	return io.WriteString(w.output, sb.String())
}

// writeResult writes the sections of one analysis result.
func (w *SimpleWriter) writeResult(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString(fmt.Sprintf("Verdict:  %s\n", verdictLabel(result.Overall)))
	if result.Payload.Subject != "" {
		sb.WriteString(fmt.Sprintf("Subject:  %s\n", result.Payload.Subject))
	}
	sb.WriteString(fmt.Sprintf("Length:   %d characters\n", result.Payload.TextLength))

	if !result.HasEvidence() {
		sb.WriteString("\nNo suspicious links or phishing phrases found.\n")
	}

	if len(result.SuspiciousLinks) > 0 {
		sb.WriteString("\nSuspicious links:\n")
		for _, l := range result.SuspiciousLinks {
			sb.WriteString(fmt.Sprintf("  [!] %s\n", l.URL))
			sb.WriteString(fmt.Sprintf("      %s\n", l.Reasons))
		}
	}

	if len(result.FoundPhrases) > 0 {
		sb.WriteString("\nPhishing phrases:\n")
		for _, p := range result.FoundPhrases {
			sb.WriteString(fmt.Sprintf("  [!] %q\n", p))
		}
	}

	w.writeGrammar(sb, result.Grammar)
	sb.WriteString("\n")
}

// writeGrammar writes the grammar line and, when verbose, every issue.
func (w *SimpleWriter) writeGrammar(sb *strings.Builder, g *model.GrammarReport) {
	switch {
	case g == nil:
		sb.WriteString("\nGrammar:  skipped\n")
		return
	case !g.Success:
		sb.WriteString(fmt.Sprintf("\nGrammar:  unavailable (%s)\n", g.Error))
		return
	}

	sb.WriteString(fmt.Sprintf("\nGrammar:  %d issue(s)\n", g.Count))
	if !w.verbose {
		return
	}
	for _, issue := range g.Issues {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", issue.RuleID, issue.Message))
		sb.WriteString(fmt.Sprintf("    %s\n", truncateString(issue.Context, 70)))
	}
}

// verdictLabel returns the verdict in upper case with a visual indicator.
func verdictLabel(v model.Verdict) string {
	switch v {
	case model.VerdictSuspicious:
		return "[!!] SUSPICIOUS"
	case model.VerdictWarning:
		return "[!] WARNING"
	case model.VerdictSafe:
		return "[ok] SAFE"
	default:
		return "[?] " + strings.ToUpper(v.String())
	}
}
