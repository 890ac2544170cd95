package entities

import "errors"

// Domain errors
var (
	// Upstream payload errors
	ErrMalformedPayload = errors.New("malformed upstream payload")
	ErrNoJSONObject     = errors.New("no JSON object found in model output")

	// Shape errors
	ErrEmptySummary    = errors.New("summary text is empty")
	ErrEmptyTranscript = errors.New("transcript text is empty")
)
