package grammar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/mailsafe/internal/model"
)

const (
	// DefaultEndpoint is the public LanguageTool instance.
	DefaultEndpoint = "https://api.languagetool.org/v2/check"

	// DefaultTimeout bounds one grammar check.
	DefaultTimeout = 20 * time.Second

	// Language is the language code sent with every check.
	Language = "en-US"

	maxErrorBody = 4096

	// maxResponseBody caps how much of a check response is read.
	maxResponseBody = 8 << 20
)

var (
	// ErrUnavailable is returned when the service cannot be reached.
	ErrUnavailable = errors.New("grammar service unavailable")
)

// Result is the outcome of one grammar check.
// On success Matches holds the unfiltered issues from the service.
type Result struct {
	Success bool                 `json:"success"`
	Matches []model.GrammarIssue `json:"matches"`
	Error   string               `json:"error,omitempty"`
}

// Client sends text to the grammar service. It is safe for concurrent use.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-check timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets the HTTP client used for checks.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for endpoint; an empty endpoint selects DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check submits text for checking. The caller is expected to have truncated it.
func (c *Client) Check(ctx context.Context, text string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	matches, err := c.check(ctx, text)
	if err != nil {
		c.logger.Warn("grammar check failed",
			"service", "languagetool",
			"error", err,
		)
		return Result{Success: false, Matches: []model.GrammarIssue{}, Error: err.Error()}
	}
	return Result{Success: true, Matches: matches}
}

func (c *Client) check(ctx context.Context, text string) ([]model.GrammarIssue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create grammar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(body[:min(len(body), maxErrorBody)]))
		return nil, fmt.Errorf("grammar service returned status %d: %s", resp.StatusCode, detail)
	}

	matches, ok := decodeMatches(body)
	if !ok {
		c.logger.Warn("grammar response has no match list",
			"service", "languagetool",
			"bytes", len(body),
		)
	}
	return matches, nil
}

// decodeMatches returns the raw match list of a 2xx body. A body that is
// empty, not JSON or lacks the list yields no matches and ok == false.
func decodeMatches(body []byte) (matches []model.GrammarIssue, ok bool) {
	var decoded checkResponse
	if len(body) == 0 || json.Unmarshal(body, &decoded) != nil || decoded.Matches == nil {
		return []model.GrammarIssue{}, false
	}
	return *decoded.Matches, true
}

// checkResponse is the subset of the /v2/check body used here.
type checkResponse struct {
	Matches *[]model.GrammarIssue `json:"matches"`
}
