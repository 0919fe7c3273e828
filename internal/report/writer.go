package report

import (
	"io"

	"github.com/nao1215/mailsafe/internal/model"
)

// Entry is one analyzed input of a batch, such as a single .eml file.
// Exactly one of Result and Err is set.
type Entry struct {
	// Name identifies the input, typically its file path.
	Name string

	// Result is the analysis result when the input could be analyzed.
	Result *model.AnalysisResult

	// Err is the reason the input could not be analyzed.
	Err error
}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs a single result.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.AnalysisResult) (int, error)

	// WriteEntries outputs the results of a batch.
	WriteEntries(entries []Entry) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// The command line uses it to write a report file and a terminal summary at once.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteEntries outputs the batch to all configured Writers.
func (m *MultiWriter) WriteEntries(entries []Entry) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteEntries(entries)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// verdictCounts tallies the verdicts of the analyzed entries.
// Failed entries are counted separately.
type verdictCounts struct {
	safe, warning, suspicious, failed int
}

func countVerdicts(entries []Entry) verdictCounts {
	var c verdictCounts
	for _, e := range entries {
		if e.Err != nil || e.Result == nil {
			c.failed++
			continue
		}
		switch e.Result.Overall {
		case model.VerdictSuspicious:
			c.suspicious++
		case model.VerdictWarning:
			c.warning++
		default:
			c.safe++
		}
	}
	return c
}

// truncateString truncates s to maxLen characters with an ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
