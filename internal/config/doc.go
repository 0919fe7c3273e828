// Package config provides configuration management for mailsafe.
//
// Configuration is resolved once at startup and is immutable afterwards.
// Sources are applied from lowest to highest precedence:
//  1. Built-in defaults (NewConfig)
//  2. A YAML configuration file (.mailsafe, or the XDG config directory)
//  3. Variables from a .env file in the working directory
//  4. Process environment variables
//  5. CLI flags, applied by the command layer
//
// The resulting Config is passed explicitly to every component constructor;
// there is no package-level configuration state.
package config
