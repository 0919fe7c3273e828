package mailparse

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"

	"github.com/nao1215/mailsafe/internal/model"
)

// Parse reads an RFC 5322 message and returns its normalized payload.
func Parse(r io.Reader) (*model.Payload, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	if strings.TrimSpace(env.Text) == "" && strings.TrimSpace(env.HTML) == "" {
		return nil, ErrEmptyMessage
	}

	links := mergeLinks(HTMLLinks(env.HTML), TextLinks(env.Text))
	payload := model.NewPayload(env.Text, env.GetHeader("Subject"), "", links)
	return &payload, nil
}

// DecodeJSON reads an analysis request body ({"payload": {...}}) or a bare
// payload object and returns the normalized payload.
func DecodeJSON(r io.Reader) (*model.Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if len(envelope.Payload) > 0 && string(envelope.Payload) != "null" {
		data = envelope.Payload
	}

	var p model.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	payload := p.Normalize()
	return &payload, nil
}

// ParseFile parses the message stored at path.
// Files ending in .json are decoded with DecodeJSON; anything else is
// treated as an RFC 5322 message.
func ParseFile(path string) (*model.Payload, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	var payload *model.Payload
	if strings.EqualFold(filepath.Ext(path), ".json") {
		payload, err = DecodeJSON(f)
	} else {
		payload, err = Parse(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return payload, nil
}
