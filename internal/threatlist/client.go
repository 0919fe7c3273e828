package threatlist

import (
	"bytes"
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
)

const (
	// DefaultEndpoint is the Safe Browsing v4 lookup endpoint.
	DefaultEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

	// DefaultTimeout bounds one lookup request.
	DefaultTimeout = 15 * time.Second

	// MaxBatch is the maximum number of URLs sent in one lookup.
	MaxBatch = 50

	// UnknownURL replaces the URL of a match whose response shape is not recognized.
	UnknownURL = "unknown"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 4096
)

// Threat types requested from the service.
var threatTypes = []string{
	"MALWARE",
	"SOCIAL_ENGINEERING",
	"UNWANTED_SOFTWARE",
	"POTENTIALLY_HARMFUL_APPLICATION",
}

// Match is one URL reported by the reputation service.
type Match struct {
	URL        string `json:"url"`
	ThreatType string `json:"threatType"`
}

// Reason returns the evidence text for the match.
func (m Match) Reason() string {
	return "Google Safe Browsing match: " + m.ThreatType
}

// Result is the outcome of one lookup.
// Success is false when the service could not be reached or answered with a
// non-2xx status; Error then carries the failure detail.
type Result struct {
	Success bool    `json:"success"`
	Matches []Match `json:"matches"`
	Error   string  `json:"error,omitempty"`
}

// Client performs lookups against the reputation service.
// A Client is safe for concurrent use.
type Client struct {
	apiKey        string
	endpoint      string
	timeout       time.Duration
	clientID      string
	clientVersion string
	httpClient    *http.Client
	logger        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the lookup endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClientInfo sets the client identification sent with each lookup.
func WithClientInfo(id, version string) Option {
	return func(c *Client) {
		c.clientID = id
		c.clientVersion = version
	}
}

// WithHTTPClient sets the HTTP client used for lookups.
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

// New creates a Client. An empty apiKey disables lookups.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:        apiKey,
		endpoint:      DefaultEndpoint,
		timeout:       DefaultTimeout,
		clientID:      "mailsafe",
		clientVersion: "1.0.0",
		httpClient:    &http.Client{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Lookup checks up to MaxBatch urls in one request.
// Blank entries are skipped; extra entries beyond MaxBatch are ignored.
func (c *Client) Lookup(ctx context.Context, urls []string) Result {
	if !c.Enabled() {
		return Result{Success: true, Matches: []Match{}}
	}

	entries := batch(urls)
	if len(entries) == 0 {
		return Result{Success: true, Matches: []Match{}}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	matches, err := c.find(ctx, entries)
	if err != nil {
		c.logger.Warn("threat list lookup failed",
			"service", "safebrowsing",
			"urls", len(entries),
			"error", err,
		)
		return Result{Success: false, Matches: []Match{}, Error: err.Error()}
	}
	return Result{Success: true, Matches: matches}
}

// find performs the HTTP exchange and decodes the matches.
func (c *Client) find(ctx context.Context, urls []string) ([]Match, error) {
	body, err := json.Marshal(c.newRequest(urls))
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup request: %w", err)
	}

	endpoint, err := c.endpointWithKey()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, stripKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best-effort detail
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
	}

	var decoded findResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if errors.Is(err, io.EOF) {
			// The service answers {} or an empty body when nothing matched.
			return []Match{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return decoded.matches(), nil
}

// endpointWithKey returns the endpoint with the key query parameter set.
func (c *Client) endpointWithKey() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid threat list endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// batch drops blank URLs and caps the list at MaxBatch.
func batch(urls []string) []string {
	out := make([]string, 0, min(len(urls), MaxBatch))
	for _, u := range urls {
		if len(out) == MaxBatch {
			break
		}
		if strings.TrimSpace(u) == "" {
			continue
		}
		out = append(out, u)
	}
	return out
}

// stripKey removes the request URL from transport errors so the API key
// never ends up in results sent to callers.
func stripKey(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
