package model

import "unicode/utf8"

// Normalization limits applied to every incoming payload.
const (
	// MaxTextLength is the maximum number of characters of body text analyzed.
	MaxTextLength = 30000

	// MaxLinks is the maximum number of links analyzed per payload.
	MaxLinks = 50

	// SnippetLength is the number of leading characters used for a derived snippet.
	SnippetLength = 200
)

// Payload is the normalized content of one analysis request.
// A Payload is built once per request with NewPayload and never modified.
type Payload struct {
	// Text is the message body, truncated to MaxTextLength characters.
	Text string `json:"text"`

	// Subject is the message subject, kept as given.
	Subject string `json:"subject"`

	// Snippet is the caller-provided preview, or the first SnippetLength
	// characters of Text when the caller did not provide one.
	Snippet string `json:"snippet"`

	// Links holds at most MaxLinks URLs in the order the caller sent them.
	Links []string `json:"links"`
}

// NewPayload returns a normalized Payload.
// Character counts are in runes, so multi-byte text is never cut mid-character.
func NewPayload(text, subject, snippet string, links []string) Payload {
	text = truncateRunes(text, MaxTextLength)
	if snippet == "" {
		snippet = truncateRunes(text, SnippetLength)
	}

	n := min(len(links), MaxLinks)
	normalized := make([]string, n)
	copy(normalized, links[:n])

	return Payload{
		Text:    text,
		Subject: subject,
		Snippet: snippet,
		Links:   normalized,
	}
}

// Normalize returns a copy of p with the normalization rules applied.
// It is used when a Payload was decoded directly from JSON.
func (p Payload) Normalize() Payload {
	return NewPayload(p.Text, p.Subject, p.Snippet, p.Links)
}

// TextLength returns the number of characters in Text.
func (p Payload) TextLength() int {
	return utf8.RuneCountInString(p.Text)
}

// Summary returns the echo of the payload included in an AnalysisResult.
func (p Payload) Summary() PayloadSummary {
	return PayloadSummary{
		Subject:    p.Subject,
		Snippet:    p.Snippet,
		TextLength: p.TextLength(),
	}
}

// truncateRunes returns the first limit runes of s.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		// Byte length bounds rune count, nothing to cut.
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// Options selects the optional checks for one analysis.
type Options struct {
	// LinkScanner enables the link heuristics and the threat-list lookup.
	LinkScanner bool `json:"linkScanner"`

	// GrammarChecker enables the grammar check for texts of at least
	// MinGrammarTextLength characters.
	GrammarChecker bool `json:"grammarChecker"`
}

// MinGrammarTextLength is the shortest text, in characters, sent to the grammar service.
const MinGrammarTextLength = 10
