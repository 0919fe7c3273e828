// Package phrase matches message text against a fixed dictionary of phrases
// that are common in phishing and advance-fee scams.
package phrase

import (
	"strings"

	"golang.org/x/text/cases"
)

// dictionary is matched in this order; results keep it.
var dictionary = []string{
	"you won",
	"claim your",
	"click here",
	"verify your account",
	"update your account",
	"urgent",
	"congratulations",
	"prize",
	"winner",
}

// Dictionary returns a copy of the phrase dictionary in match order.
func Dictionary() []string {
	return append([]string(nil), dictionary...)
}

// Match returns the dictionary phrases contained in text, ignoring case.
// The result follows dictionary order, not the order phrases appear in text.
func Match(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}

	// Full Unicode case folding on both sides.
	folder := cases.Fold()
	folded := folder.String(text)

	for _, p := range dictionary {
		if strings.Contains(folded, folder.String(p)) {
			found = append(found, p)
		}
	}
	return found
}
