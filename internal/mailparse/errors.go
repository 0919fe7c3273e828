package mailparse

import "errors"

var (
	// ErrEmptyMessage is returned when a message has neither a text nor an HTML body.
	ErrEmptyMessage = errors.New("message has no body")

	// ErrMalformedMessage is returned when a message cannot be decoded.
	ErrMalformedMessage = errors.New("malformed message")
)
