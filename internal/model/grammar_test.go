package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGrammarIssueUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes LanguageTool match", func(t *testing.T) {
		t.Parallel()

		raw := `{
			"message": "Possible spelling mistake found.",
			"shortMessage": "Spelling mistake",
			"replacements": [{"value": "receive"}, {"value": "relieve"}],
			"offset": 4,
			"length": 7,
			"context": {"text": "You recieve a prize today", "offset": 4, "length": 7},
			"rule": {"id": "MORFOLOGIK_RULE_EN_US", "issueType": "misspelling"}
		}`

		var got GrammarIssue
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := GrammarIssue{
			Severity:     GrammarSeverityError,
			Message:      "Possible spelling mistake found.",
			ShortMessage: "Spelling mistake",
			Context:      "You recieve a prize today",
			RuleID:       "MORFOLOGIK_RULE_EN_US",
			Offset:       4,
			Length:       7,
			Replacements: []string{"receive", "relieve"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("decodes flat form", func(t *testing.T) {
		t.Parallel()

		raw := `{"severity":"style","message":"Too wordy","context":"in order to win","ruleId":"WORDY"}`

		var got GrammarIssue
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Severity != "style" || got.RuleID != "WORDY" || got.Context != "in order to win" {
			t.Errorf("unexpected issue: %+v", got)
		}
	})

	t.Run("explicit severity wins over issue type", func(t *testing.T) {
		t.Parallel()

		raw := `{"severity":"suggestion","message":"m","rule":{"id":"X","issueType":"grammar"}}`

		var got GrammarIssue
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Severity != "suggestion" {
			t.Errorf("expected severity 'suggestion', got %q", got.Severity)
		}
	})

	t.Run("encoded issue decodes to itself", func(t *testing.T) {
		t.Parallel()

		in := GrammarIssue{Severity: "error", Message: "msg text", Context: "some context", RuleID: "R1"}
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var out GrammarIssue
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(in, out); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSeverityForIssueType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		issueType string
		expected  string
	}{
		{"misspelling", GrammarSeverityError},
		{"grammar", GrammarSeverityError},
		{"typographical", GrammarSeverityError},
		{"style", GrammarSeverityStyle},
		{"whitespace", GrammarSeverityStyle},
		{"uncategorized", GrammarSeveritySuggestion},
		{"", GrammarSeveritySuggestion},
	}

	for _, tc := range testCases {
		t.Run(tc.issueType, func(t *testing.T) {
			t.Parallel()
			if got := SeverityForIssueType(tc.issueType); got != tc.expected {
				t.Errorf("SeverityForIssueType(%q) = %q, want %q", tc.issueType, got, tc.expected)
			}
		})
	}
}

func TestGrammarReportIssueCount(t *testing.T) {
	t.Parallel()

	var nilReport *GrammarReport
	if nilReport.IssueCount() != 0 {
		t.Error("expected 0 for nil report")
	}

	if NewGrammarError("down").IssueCount() != 0 {
		t.Error("expected 0 for failed report")
	}

	r := NewGrammarReport([]GrammarIssue{{}, {}})
	if r.IssueCount() != 2 || r.Count != 2 {
		t.Errorf("expected 2 issues, got IssueCount=%d Count=%d", r.IssueCount(), r.Count)
	}

	empty := NewGrammarReport(nil)
	if empty.Issues == nil {
		t.Error("expected non-nil issues slice")
	}
}
