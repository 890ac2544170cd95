package transcription

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

// UndeterminedLanguage is used when no language was requested and the
// upstream did not report one.
const UndeterminedLanguage = "und"

// NormalizeOptions carries request context the raw answer does not contain
type NormalizeOptions struct {
	Language   string
	SourcePath string
}

// Result is a normalized transcript plus what went wrong along the way
type Result struct {
	Transcript entities.Transcript `json:"transcript"`
	Warnings   []string            `json:"warnings,omitempty"`
	Degraded   bool                `json:"degraded"`
}

// ResponseAdapter converts one response format into a Transcript. An error
// means the upstream payload could not be understood at all.
type ResponseAdapter interface {
	Format() string
	Adapt(raw *ai.RawTranscription, opts NormalizeOptions) (entities.Transcript, []string, error)
}

// Normalizer picks an adapter by response format
type Normalizer struct {
	adapters map[string]ResponseAdapter
	fallback ResponseAdapter
	logger   *zap.Logger
}

// NewNormalizer creates a normalizer with every built-in adapter registered
func NewNormalizer(l *zap.Logger) *Normalizer {
	n := &Normalizer{
		adapters: make(map[string]ResponseAdapter),
		fallback: envelopeAdapter{},
		logger:   logger.OrNop(l),
	}
	n.Register(segmentedAdapter{})
	n.Register(envelopeAdapter{})
	n.Register(plainTextAdapter{})
	n.Register(subtitleAdapter{format: "srt"})
	n.Register(subtitleAdapter{format: "vtt"})
	return n
}

// Register adds or replaces the adapter for a.Format()
func (n *Normalizer) Register(a ResponseAdapter) {
	n.adapters[a.Format()] = a
}

// Normalize never fails. When the adapter rejects the payload the raw body
// is kept as the transcript text, without segments, and Degraded is set.
func (n *Normalizer) Normalize(raw *ai.RawTranscription, opts NormalizeOptions) Result {
	if raw == nil {
		raw = &ai.RawTranscription{}
	}

	adapter, ok := n.adapters[raw.ResponseFormat]
	if !ok {
		n.logger.Warn("⚠️ No adapter for response format, reading it as a JSON envelope",
			zap.String("format", raw.ResponseFormat))
		adapter = n.fallback
	}

	res := Result{}
	tr, warnings, err := adapter.Adapt(raw, opts)
	if err != nil {
		n.logger.Warn("⚠️ Could not interpret transcription response, keeping raw text",
			zap.String("format", raw.ResponseFormat),
			zap.String("provider", raw.Provider),
			zap.Error(err))
		tr = entities.Transcript{Text: strings.TrimSpace(string(raw.Body))}
		warnings = append(warnings, fmt.Sprintf("response kept as raw text: %v", err))
		res.Degraded = true
	}

	if tr.Language == "" {
		tr.Language = opts.Language
	}
	if tr.Language == "" {
		tr.Language = UndeterminedLanguage
	}
	if opts.SourcePath != "" {
		src := opts.SourcePath
		tr.SourcePath = &src
	}
	tr.Normalize()

	for _, w := range warnings {
		n.logger.Warn("⚠️ Transcription normalization warning", zap.String("detail", w))
	}

	res.Transcript = tr
	res.Warnings = warnings
	return res
}
