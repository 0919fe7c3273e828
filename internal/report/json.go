package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/mailsafe/internal/model"
)

// JSONWriter outputs results in JSON format.
// A single result is encoded exactly as POST /api/analyze returns it.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is recorded in batch reports.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the mailsafe version in batch reports.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs a single result in JSON format.
func (w *JSONWriter) Write(result *model.AnalysisResult) (int, error) {
	return w.writeJSON(result)
}

// WriteEntries outputs a batch wrapped in a JSONReport.
func (w *JSONWriter) WriteEntries(entries []Entry) (int, error) {
	return w.writeJSON(NewJSONReport(entries, w.version))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// JSONReport is the JSON document written for a batch.
type JSONReport struct {
	// Version is the mailsafe version that generated this report.
	Version string `json:"version,omitempty"`

	// Summary counts the verdicts.
	Summary JSONSummary `json:"summary"`

	// Results holds one entry per input, in input order.
	Results []JSONEntry `json:"results"`
}

// JSONSummary counts verdicts across a batch.
type JSONSummary struct {
	Total      int `json:"total"`
	Safe       int `json:"safe"`
	Warning    int `json:"warning"`
	Suspicious int `json:"suspicious"`
	Failed     int `json:"failed"`
}

// JSONEntry is one input of a batch.
type JSONEntry struct {
	Name   string                `json:"name"`
	Result *model.AnalysisResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// NewJSONReport builds the batch document for entries.
func NewJSONReport(entries []Entry, version string) *JSONReport {
	c := countVerdicts(entries)
	r := &JSONReport{
		Version: version,
		Summary: JSONSummary{
			Total:      len(entries),
			Safe:       c.safe,
			Warning:    c.warning,
			Suspicious: c.suspicious,
			Failed:     c.failed,
		},
		Results: make([]JSONEntry, 0, len(entries)),
	}
	for _, e := range entries {
		je := JSONEntry{Name: e.Name, Result: e.Result}
		if e.Err != nil {
			je.Result = nil
			je.Error = e.Err.Error()
		}
		r.Results = append(r.Results, je)
	}
	return r
}
