package grammar

import (
	"slices"
	"strings"

	"github.com/nao1215/mailsafe/internal/model"
)

// Filter thresholds, in characters after trimming.
const (
	minMessageLength = 5
	minContextLength = 10
)

// SuppressedRules lists rule identifiers whose issues are always discarded.
var SuppressedRules = []string{
	"MORFOLOGIK_RULE_EN_US",
	"COMMA_PARENTHESIS_WHITESPACE",
	"SEND_AN_EMAIL",
	"MISSING_COMMA_AFTER_YEAR",
	"EN_DASH_RULE",
	"EN_QUOTES",
}

// predicate is one filter stage.
type predicate func(model.GrammarIssue) bool

// stages run in this order; an issue survives only if every stage keeps it.
var stages = []predicate{
	func(g model.GrammarIssue) bool { return g.Severity == model.GrammarSeverityError },
	func(g model.GrammarIssue) bool { return runeLen(strings.TrimSpace(g.Message)) > minMessageLength },
	func(g model.GrammarIssue) bool { return runeLen(strings.TrimSpace(g.Context)) > minContextLength },
	func(g model.GrammarIssue) bool { return !slices.Contains(SuppressedRules, g.RuleID) },
}

// Filter narrows issues to actionable errors. The input is not modified.
// A nil input yields an empty, non-nil slice.
func Filter(issues []model.GrammarIssue) []model.GrammarIssue {
	kept := make([]model.GrammarIssue, 0, len(issues))
	for _, issue := range issues {
		if keep(issue) {
			kept = append(kept, issue)
		}
	}
	return kept
}

// FilterRaw decodes a raw service body and filters its matches.
// Bodies that are empty, malformed or lack a match list yield no issues.
func FilterRaw(body []byte) []model.GrammarIssue {
	matches, _ := decodeMatches(body)
	return Filter(matches)
}

func keep(issue model.GrammarIssue) bool {
	for _, stage := range stages {
		if !stage(issue) {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return len([]rune(s))
}
