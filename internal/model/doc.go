// Package model defines the data structures shared by the mailsafe analyzer,
// its HTTP surface and its report writers.
//
// This package contains the following main types:
//   - Payload: a normalized, request-scoped copy of the content to analyze
//   - Options: the per-request switches for optional checks
//   - GrammarIssue / GrammarReport: grammar service output after filtering
//   - LinkFinding: one suspicious URL with its deduplicated reasons
//   - AnalysisResult: the aggregated verdict returned to the caller
//
// Models live in their own package so that analyzer, server and report can
// share them without import cycles. Every type is serializable to JSON with
// the field names used on the wire.
package model
