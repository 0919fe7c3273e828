package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/mailsafe/internal/grammar"
	"github.com/nao1215/mailsafe/internal/linkscore"
	"github.com/nao1215/mailsafe/internal/model"
	"github.com/nao1215/mailsafe/internal/phrase"
	"github.com/nao1215/mailsafe/internal/threatlist"
)

// GrammarWarningThreshold is the grammar issue count that must be exceeded
// before a payload without other evidence is rated as a warning.
const GrammarWarningThreshold = 15

// ThreatChecker looks up URLs in a reputation service.
// Implementations must report remote failures in the Result, not panic.
type ThreatChecker interface {
	Lookup(ctx context.Context, urls []string) threatlist.Result
}

// GrammarChecker checks text with a grammar service.
type GrammarChecker interface {
	Check(ctx context.Context, text string) grammar.Result
}

// Analyzer orchestrates one analysis per payload. It holds no per-request
// state and is safe for concurrent use.
type Analyzer struct {
	threats ThreatChecker
	grammar GrammarChecker

	// requestTimeout bounds a whole analysis; zero disables the bound.
	requestTimeout time.Duration

	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRequestTimeout bounds the total duration of one analysis.
// Per-call timeouts of the clients still apply inside this bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d >= 0 {
			a.requestTimeout = d
		}
	}
}

// New creates an Analyzer backed by the given clients.
func New(threats ThreatChecker, grammarChecker GrammarChecker, opts ...Option) *Analyzer {
	a := &Analyzer{
		threats: threats,
		grammar: grammarChecker,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the checks selected by opts over payload and returns the
// aggregated result. The payload is normalized before any check runs.
//
// The only errors are ErrMissingPayload for a nil payload and ErrInternal
// when a check panics; dependency failures are reported inside the result.
func (a *Analyzer) Analyze(ctx context.Context, payload *model.Payload, opts model.Options) (result *model.AnalysisResult, err error) {
	if payload == nil {
		return nil, ErrMissingPayload
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis panicked",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			result = nil
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if a.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.requestTimeout)
		defer cancel()
	}

	p := payload.Normalize()
	return a.analyze(ctx, p, opts)
}

func (a *Analyzer) analyze(ctx context.Context, p model.Payload, opts model.Options) (*model.AnalysisResult, error) {
	var (
		threatResult  threatlist.Result
		grammarResult grammar.Result
		runGrammar    = opts.GrammarChecker && p.TextLength() >= model.MinGrammarTextLength
	)

	// Both calls capture their own failures, so the group never sees an error
	// and one slow dependency never cancels the other.
	var g errgroup.Group
	if opts.LinkScanner {
		g.Go(func() (err error) {
			defer recoverInto(&err)
			threatResult = a.threats.Lookup(ctx, p.Links)
			return nil
		})
	}
	if runGrammar {
		g.Go(func() (err error) {
			defer recoverInto(&err)
			grammarResult = a.grammar.Check(ctx, p.Text)
			return nil
		})
	}

	var heuristics []evidence
	if opts.LinkScanner {
		heuristics = scoreLinks(p.Links)
	}
	phrases := phrase.Match(p.Text)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var links []evidence
	if opts.LinkScanner {
		if !threatResult.Success {
			a.logger.Warn("threat list unavailable, continuing with heuristics",
				"error", threatResult.Error,
			)
		}
		links = append(threatEvidence(threatResult), heuristics...)
	}

	var grammarReport *model.GrammarReport
	if runGrammar {
		grammarReport = buildGrammarReport(grammarResult)
	}

	findings := deduplicate(links)
	verdict := ComputeVerdict(len(findings), len(phrases), grammarReport.IssueCount())

	a.logger.Debug("analysis complete",
		"text_length", p.TextLength(),
		"links", len(p.Links),
		"suspicious_links", len(findings),
		"phrases", len(phrases),
		"grammar_issues", grammarReport.IssueCount(),
		"verdict", verdict,
	)

	return &model.AnalysisResult{
		Success:         true,
		Payload:         p.Summary(),
		SuspiciousLinks: findings,
		Grammar:         grammarReport,
		FoundPhrases:    phrases,
		Overall:         verdict,
	}, nil
}

// ComputeVerdict applies the verdict precedence: any link or phrase evidence
// is suspicious; otherwise more than GrammarWarningThreshold grammar issues
// is a warning; otherwise the payload is safe.
func ComputeVerdict(suspiciousLinks, phrases, grammarIssues int) model.Verdict {
	switch {
	case suspiciousLinks > 0 || phrases > 0:
		return model.VerdictSuspicious
	case grammarIssues > GrammarWarningThreshold:
		return model.VerdictWarning
	default:
		return model.VerdictSafe
	}
}

func buildGrammarReport(r grammar.Result) *model.GrammarReport {
	if !r.Success {
		msg := r.Error
		if msg == "" {
			msg = "grammar check unavailable"
		}
		return model.NewGrammarError(msg)
	}
	return model.NewGrammarReport(grammar.Filter(r.Matches))
}

func scoreLinks(links []string) []evidence {
	out := make([]evidence, 0)
	for _, link := range links {
		if reasons := linkscore.Score(link); len(reasons) > 0 {
			out = append(out, evidence{url: link, reasons: reasons})
		}
	}
	return out
}

func threatEvidence(r threatlist.Result) []evidence {
	out := make([]evidence, 0, len(r.Matches))
	for _, m := range r.Matches {
		out = append(out, evidence{url: m.URL, reasons: []string{m.Reason()}})
	}
	return out
}

// recoverInto converts a panic in a dependency call into ErrInternal.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrInternal, r)
	}
}
