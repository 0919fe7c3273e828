package mailparse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const plainMessage = "From: Security Team <security@example.com>\r\n" +
	"To: user@example.com\r\n" +
	"Subject: Verify your account\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Please verify your account at http://bit.ly/abc.\r\n" +
	"Thanks.\r\n"

const alternativeMessage = "From: billing@example.com\r\n" +
	"To: user@example.com\r\n" +
	"Subject: Invoice\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Your invoice is ready: https://example.com/invoice\r\n" +
	"Questions? https://help.example.com\r\n" +
	"--b1\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><body><p>Your invoice is <a href=\"https://xn--pple-43d.com/pay\">ready</a>.</p>" +
	"<p><a href=\"https://example.com/invoice\">View</a> <a href=\"mailto:billing@example.com\">mail</a></p>" +
	"</body></html>\r\n" +
	"--b1--\r\n"

const htmlOnlyMessage = "From: it@example.com\r\n" +
	"Subject: Password reset\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><body><p>Reset your password <a href=\"http://login.example.tk/reset\">here</a></p></body></html>\r\n"

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("plain text message", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(strings.NewReader(plainMessage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Subject != "Verify your account" {
			t.Errorf("unexpected subject %q", p.Subject)
		}
		if !strings.Contains(p.Text, "Please verify your account") {
			t.Errorf("unexpected text %q", p.Text)
		}
		if diff := cmp.Diff([]string{"http://bit.ly/abc"}, p.Links); diff != "" {
			t.Errorf("links mismatch (-want +got):\n%s", diff)
		}
		if !strings.HasPrefix(p.Text, p.Snippet) {
			t.Errorf("expected snippet to be derived from text, got %q", p.Snippet)
		}
	})

	t.Run("html links come first and duplicates collapse", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(strings.NewReader(alternativeMessage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{
			"https://xn--pple-43d.com/pay",
			"https://example.com/invoice",
			"https://help.example.com",
		}
		if diff := cmp.Diff(want, p.Links); diff != "" {
			t.Errorf("links mismatch (-want +got):\n%s", diff)
		}
		if strings.Contains(p.Text, "<a") {
			t.Errorf("expected plain text body, got %q", p.Text)
		}
	})

	t.Run("html only message", func(t *testing.T) {
		t.Parallel()

		p, err := Parse(strings.NewReader(htmlOnlyMessage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(p.Text, "Reset your password") {
			t.Errorf("expected text rendered from html, got %q", p.Text)
		}
		if len(p.Links) == 0 || p.Links[0] != "http://login.example.tk/reset" {
			t.Errorf("unexpected links %v", p.Links)
		}
	})

	t.Run("message without body", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(strings.NewReader("Subject: empty\r\n\r\n"))
		if !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("expected ErrEmptyMessage, got %v", err)
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		subject string
		links   []string
	}{
		{
			name:    "request envelope",
			input:   `{"payload":{"text":"hello there","subject":"Hi","links":["http://a.example"]}}`,
			subject: "Hi",
			links:   []string{"http://a.example"},
		},
		{
			name:    "bare payload",
			input:   `{"text":"hello there","subject":"Bare"}`,
			subject: "Bare",
			links:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := DecodeJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Subject != tt.subject {
				t.Errorf("subject = %q, want %q", p.Subject, tt.subject)
			}
			if p.Snippet != "hello there" {
				t.Errorf("expected derived snippet, got %q", p.Snippet)
			}
			if diff := cmp.Diff(tt.links, p.Links); diff != "" {
				t.Errorf("links mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeJSON(strings.NewReader(`{"payload":`))
		if !errors.Is(err, ErrMalformedMessage) {
			t.Errorf("expected ErrMalformedMessage, got %v", err)
		}
	})
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	emlPath := filepath.Join(dir, "message.eml")
	if err := os.WriteFile(emlPath, []byte(plainMessage), 0600); err != nil {
		t.Fatalf("failed to write message: %v", err)
	}
	jsonPath := filepath.Join(dir, "request.JSON")
	if err := os.WriteFile(jsonPath, []byte(`{"payload":{"text":"json body","subject":"From JSON"}}`), 0600); err != nil {
		t.Fatalf("failed to write request: %v", err)
	}

	t.Run("eml", func(t *testing.T) {
		t.Parallel()

		p, err := ParseFile(emlPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Subject != "Verify your account" {
			t.Errorf("unexpected subject %q", p.Subject)
		}
	})

	t.Run("json extension is case insensitive", func(t *testing.T) {
		t.Parallel()

		p, err := ParseFile(jsonPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Subject != "From JSON" {
			t.Errorf("unexpected subject %q", p.Subject)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFile(filepath.Join(dir, "absent.eml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}
