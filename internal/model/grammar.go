package model

import "encoding/json"

// Grammar issue severities.
const (
	GrammarSeverityError      = "error"
	GrammarSeverityStyle      = "style"
	GrammarSeveritySuggestion = "suggestion"
)

// GrammarIssue is one issue reported by the grammar service.
// Issues are filtered by the grammar package but never modified.
type GrammarIssue struct {
	Severity     string   `json:"severity"`
	Message      string   `json:"message"`
	ShortMessage string   `json:"shortMessage,omitempty"`
	Context      string   `json:"context"`
	RuleID       string   `json:"ruleId"`
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Replacements []string `json:"replacements,omitempty"`
}

// UnmarshalJSON decodes both the flat form this type encodes to and the
// LanguageTool match form, where context, rule and replacements are objects.
// In the LanguageTool form the severity is derived from rule.issueType.
func (g *GrammarIssue) UnmarshalJSON(data []byte) error {
	var wire struct {
		Severity     string          `json:"severity"`
		Message      string          `json:"message"`
		ShortMessage string          `json:"shortMessage"`
		Context      json.RawMessage `json:"context"`
		RuleID       string          `json:"ruleId"`
		Offset       int             `json:"offset"`
		Length       int             `json:"length"`
		Replacements json.RawMessage `json:"replacements"`
		Rule         *struct {
			ID        string `json:"id"`
			IssueType string `json:"issueType"`
		} `json:"rule"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	issue := GrammarIssue{
		Severity:     wire.Severity,
		Message:      wire.Message,
		ShortMessage: wire.ShortMessage,
		Context:      decodeContext(wire.Context),
		RuleID:       wire.RuleID,
		Offset:       wire.Offset,
		Length:       wire.Length,
		Replacements: decodeReplacements(wire.Replacements),
	}
	if wire.Rule != nil {
		if issue.RuleID == "" {
			issue.RuleID = wire.Rule.ID
		}
		if issue.Severity == "" {
			issue.Severity = SeverityForIssueType(wire.Rule.IssueType)
		}
	}

	*g = issue
	return nil
}

// SeverityForIssueType maps a LanguageTool issue type to a severity.
// Spelling, grammar and typography problems are errors; style-like
// categories are style; anything else is a suggestion.
func SeverityForIssueType(issueType string) string {
	switch issueType {
	case "misspelling", "grammar", "typographical", "duplication", "inconsistency":
		return GrammarSeverityError
	case "style", "register", "locale-violation", "whitespace":
		return GrammarSeverityStyle
	default:
		return GrammarSeveritySuggestion
	}
}

func decodeContext(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Text
	}
	return ""
}

func decodeReplacements(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var flat []string
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat
	}
	var objs []struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Value)
	}
	return out
}

// GrammarReport is the grammar section of an AnalysisResult.
// On success Issues holds the filtered issues; on failure Error is set
// and Issues is empty.
type GrammarReport struct {
	Success bool           `json:"success"`
	Issues  []GrammarIssue `json:"issues"`
	Count   int            `json:"count"`
	Error   string         `json:"error,omitempty"`
}

// NewGrammarReport returns a successful report over the given issues.
func NewGrammarReport(issues []GrammarIssue) *GrammarReport {
	if issues == nil {
		issues = []GrammarIssue{}
	}
	return &GrammarReport{
		Success: true,
		Issues:  issues,
		Count:   len(issues),
	}
}

// NewGrammarError returns a report marking the grammar check as unavailable.
func NewGrammarError(msg string) *GrammarReport {
	return &GrammarReport{
		Success: false,
		Issues:  []GrammarIssue{},
		Error:   msg,
	}
}

// IssueCount returns the number of issues, or zero for a nil or failed report.
func (r *GrammarReport) IssueCount() int {
	if r == nil || !r.Success {
		return 0
	}
	return len(r.Issues)
}
