package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidPort is returned when the listen port is outside 1-65535.
	ErrInvalidPort = errors.New("invalid port: must be between 1 and 65535")

	// ErrInvalidTimeout is returned when a per-call timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRequestTimeout is returned when the request timeout is negative.
	// Use 0 to disable the request bound.
	ErrInvalidRequestTimeout = errors.New("invalid request timeout: must be non-negative")

	// ErrMissingGrammarEndpoint is returned when no grammar endpoint is set.
	ErrMissingGrammarEndpoint = errors.New("grammar endpoint is required")

	// ErrInvalidEndpoint is returned when an endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: must be an absolute http or https URL")

	// ErrInvalidConcurrency is returned when the CLI concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)

// Loading errors.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidEnv is returned when an environment variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")
)
