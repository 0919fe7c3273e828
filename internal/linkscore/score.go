package linkscore

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// suspiciousTokens are matched as substrings of the lower-cased URL.
var suspiciousTokens = []string{
	"verify",
	"login",
	"confirm",
	"secure",
	"account",
	"update",
	"reset",
	"bank",
	"paypal",
	"signin",
	"claim",
	"won",
	"congrats",
}

// suspiciousTLDs are matched against the end of the lower-cased URL.
var suspiciousTLDs = []string{
	".ru",
	".cn",
	".tk",
	".ml",
	".ga",
	".cf",
	".gq",
}

// punycodeMarker is the ACE prefix of an internationalized domain label.
const punycodeMarker = "xn--"

// PunycodeReason is the reason reported for internationalized hostnames.
const PunycodeReason = "punycode/IDN domain"

// Tokens returns a copy of the suspicious token dictionary.
func Tokens() []string {
	return append([]string(nil), suspiciousTokens...)
}

// TLDs returns a copy of the suspicious top-level domain list.
func TLDs() []string {
	return append([]string(nil), suspiciousTLDs...)
}

// TokenReason returns the reason reported when a URL contains token.
func TokenReason(token string) string {
	return `contains "` + token + `"`
}

// TLDReason returns the reason reported when a URL ends with tld.
func TLDReason(tld string) string {
	return "tld " + tld
}

// Score returns the heuristic reasons for rawURL, in dictionary order:
// token matches first, then the punycode reason, then the TLD match.
// An empty URL yields no reasons.
func Score(rawURL string) []string {
	reasons := make([]string, 0)
	if rawURL == "" {
		return reasons
	}

	lower := strings.ToLower(rawURL)

	for _, token := range suspiciousTokens {
		if strings.Contains(lower, token) {
			reasons = append(reasons, TokenReason(token))
		}
	}

	if strings.Contains(lower, punycodeMarker) {
		reasons = append(reasons, punycodeReason(lower))
	}

	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(lower, tld) {
			reasons = append(reasons, TLDReason(tld))
		}
	}

	return reasons
}

// punycodeReason appends the Unicode form of the host when it can be decoded.
func punycodeReason(lowerURL string) string {
	host := hostOf(lowerURL)
	if host == "" || !strings.Contains(host, punycodeMarker) {
		return PunycodeReason
	}
	decoded, err := idna.Display.ToUnicode(host)
	if err != nil || decoded == host {
		return PunycodeReason
	}
	return PunycodeReason + " (" + decoded + ")"
}

// hostOf extracts the hostname from a URL that may lack a scheme.
func hostOf(rawURL string) string {
	candidate := rawURL
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
