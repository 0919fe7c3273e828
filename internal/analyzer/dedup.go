package analyzer

import (
	"strings"

	"github.com/nao1215/mailsafe/internal/model"
)

// ReasonSeparator joins the reasons of one LinkFinding.
const ReasonSeparator = ", "

// evidence is one source's claim that a URL is suspicious.
type evidence struct {
	url     string
	reasons []string
}

// reasonSet accumulates distinct reasons in first-seen order.
type reasonSet struct {
	order []string
	seen  map[string]struct{}
}

func (s *reasonSet) add(reason string) {
	if _, ok := s.seen[reason]; ok {
		return
	}
	s.seen[reason] = struct{}{}
	s.order = append(s.order, reason)
}

// deduplicate merges evidence by URL. URLs keep the order of their first
// appearance and each URL's reasons are the union of every source's reasons.
func deduplicate(items []evidence) []model.LinkFinding {
	byURL := make(map[string]*reasonSet)
	urls := make([]string, 0)

	for _, item := range items {
		set, ok := byURL[item.url]
		if !ok {
			set = &reasonSet{seen: make(map[string]struct{})}
			byURL[item.url] = set
			urls = append(urls, item.url)
		}
		for _, r := range item.reasons {
			set.add(r)
		}
	}

	findings := make([]model.LinkFinding, 0, len(urls))
	for _, u := range urls {
		findings = append(findings, model.LinkFinding{
			URL:     u,
			Reasons: strings.Join(byURL[u].order, ReasonSeparator),
		})
	}
	return findings
}
