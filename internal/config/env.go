package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvPort               = "PORT"
	EnvThreatListAPIKey   = "SAFE_BROWSING_API_KEY"
	EnvGrammarEndpoint    = "LANGUAGETOOL_URL"
	EnvThreatListEndpoint = "MAILSAFE_THREATLIST_URL"
	EnvThreatListTimeout  = "MAILSAFE_THREATLIST_TIMEOUT"
	EnvGrammarTimeout     = "MAILSAFE_GRAMMAR_TIMEOUT"
	EnvRequestTimeout     = "MAILSAFE_REQUEST_TIMEOUT"
	EnvBodyLimit          = "MAILSAFE_BODY_LIMIT"
	EnvAllowedOrigins     = "MAILSAFE_ALLOWED_ORIGINS"
	EnvConcurrency        = "MAILSAFE_CONCURRENCY"
	EnvVerbose            = "MAILSAFE_VERBOSE"
	EnvJSONLogs           = "MAILSAFE_JSON_LOGS"
)

// ApplyEnv overlays environment variables onto cfg.
// Empty values are ignored so that an exported but blank variable does not
// clear a value from the configuration file.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvPort, v, err)
		}
		cfg.Port = port
	}

	if v, ok := get(EnvThreatListAPIKey); ok {
		cfg.ThreatListAPIKey = v
	}
	if v, ok := get(EnvThreatListEndpoint); ok {
		cfg.ThreatListEndpoint = v
	}
	if v, ok := get(EnvGrammarEndpoint); ok {
		cfg.GrammarEndpoint = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvThreatListTimeout, &cfg.ThreatListTimeout},
		{EnvGrammarTimeout, &cfg.GrammarTimeout},
		{EnvRequestTimeout, &cfg.RequestTimeout},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return envError(d.key, v, err)
		}
		*d.dst = parsed
	}

	if v, ok := get(EnvBodyLimit); ok {
		cfg.BodyLimit = v
	}

	if v, ok := get(EnvAllowedOrigins); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	if v, ok := get(EnvConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvConcurrency, v, err)
		}
		cfg.Concurrency = n
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvVerbose, &cfg.Verbose},
		{EnvJSONLogs, &cfg.JSONLogs},
	}
	for _, b := range bools {
		v, ok := get(b.key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return envError(b.key, v, err)
		}
		*b.dst = parsed
	}

	return nil
}

func envError(key, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnv, key, value, err)
}
