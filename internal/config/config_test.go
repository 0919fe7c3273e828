package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Changes to defaults must be intentional; these tests fail when they drift.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Port is 3000", func(t *testing.T) {
		t.Parallel()
		if cfg.Port != 3000 {
			t.Errorf("expected Port to be 3000, got %d", cfg.Port)
		}
	})

	t.Run("default ThreatListTimeout is 15 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.ThreatListTimeout != 15*time.Second {
			t.Errorf("expected ThreatListTimeout to be 15s, got %v", cfg.ThreatListTimeout)
		}
	})

	t.Run("default GrammarTimeout is 20 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.GrammarTimeout != 20*time.Second {
			t.Errorf("expected GrammarTimeout to be 20s, got %v", cfg.GrammarTimeout)
		}
	})

	t.Run("default RequestTimeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.RequestTimeout != 30*time.Second {
			t.Errorf("expected RequestTimeout to be 30s, got %v", cfg.RequestTimeout)
		}
	})

	t.Run("default GrammarEndpoint is the public LanguageTool instance", func(t *testing.T) {
		t.Parallel()
		if cfg.GrammarEndpoint != "https://api.languagetool.org/v2/check" {
			t.Errorf("unexpected GrammarEndpoint %q", cfg.GrammarEndpoint)
		}
	})

	t.Run("threat list is disabled without an API key", func(t *testing.T) {
		t.Parallel()
		if cfg.ThreatListEnabled() {
			t.Error("expected threat list to be disabled by default")
		}
	})

	t.Run("default AllowedOrigins is wildcard", func(t *testing.T) {
		t.Parallel()
		if diff := cmp.Diff([]string{"*"}, cfg.AllowedOrigins); diff != "" {
			t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case breaks exactly one validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config returns nil",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Port = 0 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "port above range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "zero threat list timeout",
			mutate:  func(c *Config) { c.ThreatListTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative grammar timeout",
			mutate:  func(c *Config) { c.GrammarTimeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero request timeout disables the bound",
			mutate:  func(c *Config) { c.RequestTimeout = 0 },
			wantErr: nil,
		},
		{
			name:    "negative request timeout",
			mutate:  func(c *Config) { c.RequestTimeout = -time.Second },
			wantErr: ErrInvalidRequestTimeout,
		},
		{
			name:    "empty grammar endpoint",
			mutate:  func(c *Config) { c.GrammarEndpoint = "" },
			wantErr: ErrMissingGrammarEndpoint,
		},
		{
			name:    "relative grammar endpoint",
			mutate:  func(c *Config) { c.GrammarEndpoint = "/v2/check" },
			wantErr: ErrInvalidEndpoint,
		},
		{
			name:    "non-http threat list endpoint",
			mutate:  func(c *Config) { c.ThreatListEndpoint = "ftp://example.com/find" },
			wantErr: ErrInvalidEndpoint,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoadConfigFile tests YAML parsing of the configuration file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.mailsafe")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".mailsafe")
		content := `port: 8080
threatList:
  apiKey: "file-key"
  timeout: 5s
grammar:
  endpoint: "http://localhost:8010/v2/check"
requestTimeout: 0s
allowedOrigins:
  - "https://mail.example.com"
verbose: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		file, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		file.Apply(cfg)

		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.ThreatListAPIKey != "file-key" {
			t.Errorf("expected API key from file, got %q", cfg.ThreatListAPIKey)
		}
		if cfg.ThreatListTimeout != 5*time.Second {
			t.Errorf("expected threat list timeout 5s, got %v", cfg.ThreatListTimeout)
		}
		if cfg.GrammarEndpoint != "http://localhost:8010/v2/check" {
			t.Errorf("unexpected grammar endpoint %q", cfg.GrammarEndpoint)
		}
		if cfg.RequestTimeout != 0 {
			t.Errorf("expected explicit zero request timeout, got %v", cfg.RequestTimeout)
		}
		if cfg.GrammarTimeout != DefaultGrammarTimeout {
			t.Errorf("expected unset grammar timeout to keep default, got %v", cfg.GrammarTimeout)
		}
		if !cfg.Verbose {
			t.Error("expected verbose from file")
		}
		if diff := cmp.Diff([]string{"https://mail.example.com"}, cfg.AllowedOrigins); diff != "" {
			t.Errorf("AllowedOrigins mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".mailsafe")
		if err := os.WriteFile(configPath, []byte("port: [not a number"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestLoad tests the full precedence chain: defaults, file, dotenv, environment.
func TestLoad(t *testing.T) {
	t.Parallel()

	writeFile := func(t *testing.T, dir, name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}

	envFrom := func(m map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := m[key]
			return v, ok
		}
	}

	t.Run("environment overrides dotenv which overrides file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := writeFile(t, dir, ".mailsafe", "port: 4000\nthreatList:\n  apiKey: file-key\n")
		envPath := writeFile(t, dir, ".env", "PORT=5000\nSAFE_BROWSING_API_KEY=dotenv-key\n")

		cfg, err := Load(LoadOptions{
			ConfigPath: configPath,
			EnvFile:    envPath,
			LookupEnv:  envFrom(map[string]string{"PORT": "6000"}),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Port != 6000 {
			t.Errorf("expected environment port 6000, got %d", cfg.Port)
		}
		if cfg.ThreatListAPIKey != "dotenv-key" {
			t.Errorf("expected dotenv API key, got %q", cfg.ThreatListAPIKey)
		}
		if cfg.ConfigFilePath != configPath {
			t.Errorf("expected ConfigFilePath %q, got %q", configPath, cfg.ConfigFilePath)
		}
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load(LoadOptions{
			ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
			LookupEnv:  envFrom(nil),
		})
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("missing dotenv file is ignored", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := writeFile(t, dir, ".mailsafe", "port: 4000\n")

		cfg, err := Load(LoadOptions{
			ConfigPath: configPath,
			EnvFile:    filepath.Join(dir, "absent.env"),
			LookupEnv:  envFrom(nil),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != 4000 {
			t.Errorf("expected port 4000, got %d", cfg.Port)
		}
	})
}

// TestApplyEnv tests parsing of individual environment variables.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("parses all supported variables", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{
			EnvPort:               "8081",
			EnvThreatListAPIKey:   "secret",
			EnvThreatListEndpoint: "http://localhost:9000/find",
			EnvGrammarEndpoint:    "http://localhost:8010/v2/check",
			EnvThreatListTimeout:  "3s",
			EnvGrammarTimeout:     "4s",
			EnvRequestTimeout:     "10s",
			EnvBodyLimit:          "512K",
			EnvAllowedOrigins:     " https://a.example , ,https://b.example",
			EnvConcurrency:        "8",
			EnvVerbose:            "true",
			EnvJSONLogs:           "1",
		}

		cfg := NewConfig()
		err := ApplyEnv(cfg, func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &Config{
			Port:               8081,
			ThreatListAPIKey:   "secret",
			ThreatListEndpoint: "http://localhost:9000/find",
			ThreatListTimeout:  3 * time.Second,
			ClientID:           DefaultClientID,
			ClientVersion:      DefaultClientVersion,
			GrammarEndpoint:    "http://localhost:8010/v2/check",
			GrammarTimeout:     4 * time.Second,
			RequestTimeout:     10 * time.Second,
			BodyLimit:          "512K",
			AllowedOrigins:     []string{"https://a.example", "https://b.example"},
			Concurrency:        8,
			Verbose:            true,
			JSONLogs:           true,
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("blank values are ignored", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := ApplyEnv(cfg, func(k string) (string, bool) {
			return "  ", true
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("expected defaults untouched (-want +got):\n%s", diff)
		}
	})

	invalid := []struct {
		key   string
		value string
	}{
		{EnvPort, "abc"},
		{EnvGrammarTimeout, "twenty"},
		{EnvConcurrency, "many"},
		{EnvVerbose, "sometimes"},
	}
	for _, tt := range invalid {
		t.Run("invalid "+tt.key, func(t *testing.T) {
			t.Parallel()

			err := ApplyEnv(NewConfig(), func(k string) (string, bool) {
				if k == tt.key {
					return tt.value, true
				}
				return "", false
			})
			if !errors.Is(err, ErrInvalidEnv) {
				t.Errorf("expected ErrInvalidEnv, got %v", err)
			}
		})
	}
}

// TestFindConfigFile tests configuration file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("port: 3000"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory path.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if filepath.Base(dir) != AppName {
		t.Errorf("expected XDG config dir to end with %q, got %q", AppName, dir)
	}
}
