package model

// Verdict is the overall safety classification of one analysis.
type Verdict string

const (
	// VerdictSafe means no link or phrase evidence and little grammar noise.
	VerdictSafe Verdict = "safe"

	// VerdictWarning means no link or phrase evidence but an unusually
	// high number of grammar errors.
	VerdictWarning Verdict = "warning"

	// VerdictSuspicious means at least one suspicious link or phishing phrase.
	VerdictSuspicious Verdict = "suspicious"
)

// String returns the wire representation of the verdict.
func (v Verdict) String() string {
	return string(v)
}

// IsValid reports whether v is one of the defined verdicts.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictSafe, VerdictWarning, VerdictSuspicious:
		return true
	default:
		return false
	}
}
