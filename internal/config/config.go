package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "mailsafe"

	// DefaultPort is the HTTP listen port of the analysis service.
	DefaultPort = 3000

	// DefaultThreatListEndpoint is the Safe Browsing v4 lookup endpoint.
	DefaultThreatListEndpoint = "https://safebrowsing.googleapis.com/v4/threatMatches:find"

	// DefaultThreatListTimeout bounds one threat list lookup.
	DefaultThreatListTimeout = 15 * time.Second

	// DefaultGrammarEndpoint is the public LanguageTool instance.
	DefaultGrammarEndpoint = "https://api.languagetool.org/v2/check"

	// DefaultGrammarTimeout bounds one grammar check.
	DefaultGrammarTimeout = 20 * time.Second

	// DefaultRequestTimeout bounds one whole analysis. It is larger than
	// either per-call timeout so that it only fires when something hangs
	// outside the clients' own deadlines.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultBodyLimit caps the size of an analysis request body.
	DefaultBodyLimit = "1M"

	// DefaultConcurrency is the number of files analyzed at once by the CLI.
	DefaultConcurrency = 4

	// DefaultClientID identifies mailsafe to the threat list service.
	DefaultClientID = "mailsafe"

	// DefaultClientVersion is reported alongside DefaultClientID.
	DefaultClientVersion = "1.0.0"
)

// Config holds all process-wide settings.
// It is built once by Load and must not be modified after components are constructed.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// ThreatListAPIKey is the Safe Browsing API key.
	// When empty the threat list lookup is disabled and always reports no matches.
	ThreatListAPIKey string

	// ThreatListEndpoint is the URL of the threatMatches:find method.
	ThreatListEndpoint string

	// ThreatListTimeout bounds one threat list lookup.
	ThreatListTimeout time.Duration

	// ClientID and ClientVersion are reported to the threat list service.
	ClientID      string
	ClientVersion string

	// GrammarEndpoint is the URL of the LanguageTool /v2/check method.
	GrammarEndpoint string

	// GrammarTimeout bounds one grammar check.
	GrammarTimeout time.Duration

	// RequestTimeout bounds one analysis. Zero disables the bound.
	RequestTimeout time.Duration

	// BodyLimit is the maximum request body size, e.g. "1M" or "512K".
	BodyLimit string

	// AllowedOrigins lists the CORS origins accepted by the server.
	AllowedOrigins []string

	// Concurrency is the number of payloads analyzed at once by the CLI.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// JSONLogs switches log output to JSON.
	JSONLogs bool

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Port:               DefaultPort,
		ThreatListEndpoint: DefaultThreatListEndpoint,
		ThreatListTimeout:  DefaultThreatListTimeout,
		ClientID:           DefaultClientID,
		ClientVersion:      DefaultClientVersion,
		GrammarEndpoint:    DefaultGrammarEndpoint,
		GrammarTimeout:     DefaultGrammarTimeout,
		RequestTimeout:     DefaultRequestTimeout,
		BodyLimit:          DefaultBodyLimit,
		AllowedOrigins:     []string{"*"},
		Concurrency:        DefaultConcurrency,
	}
}

// XDGConfigDir returns the XDG config directory for mailsafe.
// On Linux: ~/.config/mailsafe
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ThreatListEnabled reports whether a threat list API key is configured.
func (c *Config) ThreatListEnabled() bool {
	return c.ThreatListAPIKey != ""
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return ErrInvalidPort
	}

	if c.ThreatListTimeout <= 0 || c.GrammarTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RequestTimeout < 0 {
		return ErrInvalidRequestTimeout
	}

	if c.GrammarEndpoint == "" {
		return ErrMissingGrammarEndpoint
	}

	if !isHTTPURL(c.GrammarEndpoint) || !isHTTPURL(c.ThreatListEndpoint) {
		return ErrInvalidEndpoint
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}

// isHTTPURL reports whether s is an absolute http or https URL.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
