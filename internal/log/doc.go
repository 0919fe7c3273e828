// Package log provides structured logging for mailsafe with automatic
// redaction of secrets, built on top of the standard slog package.
//
// The SecureHandler wraps any slog.Handler and rewrites attributes before
// they reach the output:
//   - attributes whose key names a credential (api_key, authorization, ...)
//     are replaced with MaskValue
//   - values that look like credentials (bearer tokens, Google API keys)
//     are replaced with MaskValue
//   - credential query parameters embedded in URLs or error strings, such as
//     the Safe Browsing "key=" parameter, have only their value replaced
//
// Message bodies are never logged by mailsafe; callers log payload sizes
// and link counts instead.
//
// # Usage
//
//	logger := log.New(os.Stderr, log.Options{Level: slog.LevelInfo})
//	logger.Info("threat lookup", "endpoint", endpointWithKey)
//	// endpoint=https://.../threatMatches:find?key=***REDACTED***
package log
