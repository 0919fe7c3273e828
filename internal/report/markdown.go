package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/mailsafe/internal/model"
)

// MarkdownWriter outputs results as GitHub-flavored Markdown, with an alert
// block whose kind follows the verdict.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs a single result in Markdown format.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("mailsafe Report")
	md.PlainText("")
	w.writeResult(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteEntries outputs a batch with a verdict summary followed by one
// section per input.
func (w *MarkdownWriter) WriteEntries(entries []Entry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("mailsafe Report")
	md.PlainText("")
	w.writeSummary(md, entries)

	for _, e := range entries {
		md.H2(e.Name)
		md.PlainText("")
		if e.Err != nil || e.Result == nil {
			msg := "no result"
			if e.Err != nil {
				msg = e.Err.Error()
			}
			md.Cautionf("Analysis failed: %s", msg)
			md.PlainText("")
			continue
		}
		w.writeResult(md, e.Result)
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeSummary writes the verdict table and, for more than one input, a pie chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, entries []Entry) {
	c := countVerdicts(entries)

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{"🔴 Suspicious", strconv.Itoa(c.suspicious)},
			{"🟡 Warning", strconv.Itoa(c.warning)},
			{"🟢 Safe", strconv.Itoa(c.safe)},
			{"❌ Failed", strconv.Itoa(c.failed)},
			{"**Total**", "**" + strconv.Itoa(len(entries)) + "**"},
		},
	})
	md.PlainText("")

	if len(entries) > 1 {
		w.writePieChart(md, c)
	}
}

// writePieChart writes a mermaid pie chart of the verdict distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, c verdictCounts) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Verdict Distribution"),
		piechart.WithShowData(true),
	)

	if c.suspicious > 0 {
		chart.LabelAndIntValue("Suspicious", uint64(c.suspicious))
	}
	if c.warning > 0 {
		chart.LabelAndIntValue("Warning", uint64(c.warning))
	}
	if c.safe > 0 {
		chart.LabelAndIntValue("Safe", uint64(c.safe))
	}
	if c.failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(c.failed))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeResult writes the sections of one analysis result.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, result *model.AnalysisResult) {
	subject := result.Payload.Subject
	if subject == "" {
		subject = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Verdict", "**" + result.Overall.String() + "**"},
			{"Subject", subject},
			{"Snippet", truncateString(result.Payload.Snippet, 80)},
			{"Text Length", strconv.Itoa(result.Payload.TextLength)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, result)
	w.writeLinks(md, result)
	w.writePhrases(md, result)
	w.writeGrammar(md, result)
}

// writeAlert writes an alert matching the verdict.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, result *model.AnalysisResult) {
	switch result.Overall {
	case model.VerdictSuspicious:
		md.Cautionf(
			"Suspicious message: %d suspicious link(s) and %d phishing phrase(s) found.",
			len(result.SuspiciousLinks), len(result.FoundPhrases),
		)
	case model.VerdictWarning:
		md.Warningf(
			"Unusually many grammar issues (%d). Review the message before trusting it.",
			result.Grammar.IssueCount(),
		)
	default:
		md.Tip("No phishing indicators found.")
	}
	md.PlainText("")
}

// writeLinks writes the suspicious link table.
func (w *MarkdownWriter) writeLinks(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H3("Suspicious Links")
	md.PlainText("")

	if len(result.SuspiciousLinks) == 0 {
		md.PlainText("No suspicious links.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(result.SuspiciousLinks))
	for i, l := range result.SuspiciousLinks {
		rows[i] = []string{"`" + truncateString(l.URL, 60) + "`", l.Reasons}
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Reasons"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePhrases writes the matched phishing phrases.
func (w *MarkdownWriter) writePhrases(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H3("Phishing Phrases")
	md.PlainText("")

	if len(result.FoundPhrases) == 0 {
		md.PlainText("No phishing phrases.")
		md.PlainText("")
		return
	}

	md.BulletList(result.FoundPhrases...)
	md.PlainText("")
}

// writeGrammar writes the grammar section, or why it is missing.
func (w *MarkdownWriter) writeGrammar(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H3("Grammar")
	md.PlainText("")

	g := result.Grammar
	switch {
	case g == nil:
		md.PlainText("Grammar check skipped.")
		md.PlainText("")
		return
	case !g.Success:
		md.Note("Grammar check unavailable: " + g.Error)
		md.PlainText("")
		return
	case g.Count == 0:
		md.PlainText("No grammar issues.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(g.Issues))
	for i, issue := range g.Issues {
		rows[i] = []string{
			issue.RuleID,
			truncateString(issue.Message, 60),
			truncateString(issue.Context, 50),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Message", "Context"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [mailsafe](https://github.com/nao1215/mailsafe)*")
}
