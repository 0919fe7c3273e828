package config

import "time"

// File is the structure of the YAML configuration file.
// Unset fields leave the corresponding Config value untouched.
type File struct {
	Port int `yaml:"port,omitempty"`

	ThreatList ThreatListFile `yaml:"threatList,omitempty"`
	Grammar    GrammarFile    `yaml:"grammar,omitempty"`

	RequestTimeout *time.Duration `yaml:"requestTimeout,omitempty"`
	BodyLimit      string         `yaml:"bodyLimit,omitempty"`
	AllowedOrigins []string       `yaml:"allowedOrigins,omitempty"`
	Concurrency    int            `yaml:"concurrency,omitempty"`

	Verbose  *bool `yaml:"verbose,omitempty"`
	JSONLogs *bool `yaml:"jsonLogs,omitempty"`
}

// ThreatListFile configures the threat list lookup.
type ThreatListFile struct {
	APIKey        string        `yaml:"apiKey,omitempty"`
	Endpoint      string        `yaml:"endpoint,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	ClientID      string        `yaml:"clientId,omitempty"`
	ClientVersion string        `yaml:"clientVersion,omitempty"`
}

// GrammarFile configures the grammar service.
type GrammarFile struct {
	Endpoint string        `yaml:"endpoint,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// Apply copies the fields set in f onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Port != 0 {
		cfg.Port = f.Port
	}

	if f.ThreatList.APIKey != "" {
		cfg.ThreatListAPIKey = f.ThreatList.APIKey
	}
	if f.ThreatList.Endpoint != "" {
		cfg.ThreatListEndpoint = f.ThreatList.Endpoint
	}
	if f.ThreatList.Timeout != 0 {
		cfg.ThreatListTimeout = f.ThreatList.Timeout
	}
	if f.ThreatList.ClientID != "" {
		cfg.ClientID = f.ThreatList.ClientID
	}
	if f.ThreatList.ClientVersion != "" {
		cfg.ClientVersion = f.ThreatList.ClientVersion
	}

	if f.Grammar.Endpoint != "" {
		cfg.GrammarEndpoint = f.Grammar.Endpoint
	}
	if f.Grammar.Timeout != 0 {
		cfg.GrammarTimeout = f.Grammar.Timeout
	}

	if f.RequestTimeout != nil {
		cfg.RequestTimeout = *f.RequestTimeout
	}
	if f.BodyLimit != "" {
		cfg.BodyLimit = f.BodyLimit
	}
	if len(f.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = append([]string(nil), f.AllowedOrigins...)
	}
	if f.Concurrency != 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.Verbose != nil {
		cfg.Verbose = *f.Verbose
	}
	if f.JSONLogs != nil {
		cfg.JSONLogs = *f.JSONLogs
	}
}
