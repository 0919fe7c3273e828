// Package analyzer combines the independent content signals into one verdict.
//
// For every payload the Analyzer runs, depending on the request options:
//   - the offline link heuristics (linkscore) and the threat list lookup
//   - the grammar check followed by the grammar issue filter
//   - the phishing phrase matcher, unconditionally
//
// The threat list lookup and the grammar check are independent network
// calls and run concurrently. Both report failure as data, so a broken
// dependency degrades one signal instead of failing the analysis. Link
// evidence from all sources is merged per URL before the verdict is computed.
package analyzer
