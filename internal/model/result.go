package model

// PayloadSummary echoes the analyzed payload back to the caller.
type PayloadSummary struct {
	Subject    string `json:"subject"`
	Snippet    string `json:"snippet"`
	TextLength int    `json:"textLength"`
}

// LinkFinding is one suspicious URL after deduplication.
type LinkFinding struct {
	// URL is the link exactly as it appeared in the payload.
	URL string `json:"url"`

	// Reasons is the deduplicated set of reasons joined with ", ".
	Reasons string `json:"reasons"`
}

// AnalysisResult is the response of one analysis.
type AnalysisResult struct {
	Success bool           `json:"success"`
	Payload PayloadSummary `json:"payload"`

	// SuspiciousLinks has one entry per distinct URL, in order of first appearance.
	SuspiciousLinks []LinkFinding `json:"suspiciousLinks"`

	// Grammar is nil when the grammar check was disabled or the text was too short.
	Grammar *GrammarReport `json:"grammar"`

	// FoundPhrases lists matched phishing phrases in dictionary order.
	FoundPhrases []string `json:"foundPhrases"`

	Overall Verdict `json:"overall"`
}

// HasEvidence reports whether the result carries link or phrase evidence.
func (r *AnalysisResult) HasEvidence() bool {
	return len(r.SuspiciousLinks) > 0 || len(r.FoundPhrases) > 0
}
