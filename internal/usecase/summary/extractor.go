package summary

import (
	"context"
	stdErrors "errors"
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/upstream"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

// ChatCompleter is a chat completion backend
type ChatCompleter interface {
	CompleteChat(ctx context.Context, req ai.ChatRequest) (string, error)
}

// State is a step of the extraction state machine
type State int

const (
	// StatePrimary asks for a JSON object with the JSON constraint on
	StatePrimary State = iota
	// StateBestEffortExtract digs a JSON object out of the last answer
	StateBestEffortExtract
	// StateRetryNoConstraint asks again without the JSON constraint
	StateRetryNoConstraint
	// StateFallback builds a summary from the transcript itself
	StateFallback
	// StateDone is terminal
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePrimary:
		return "primary"
	case StateBestEffortExtract:
		return "best_effort_extract"
	case StateRetryNoConstraint:
		return "retry_no_constraint"
	case StateFallback:
		return "fallback"
	default:
		return "done"
	}
}

// Outcome tells how the returned summary was obtained
type Outcome string

const (
	OutcomeParsed    Outcome = "parsed"
	OutcomeRecovered Outcome = "recovered"
	OutcomeRetried   Outcome = "retried"
	OutcomeDegraded  Outcome = "degraded"
)

// Attempt records why a state did not produce a summary
type Attempt struct {
	State string `json:"state"`
	Error string `json:"error"`
}

// Result is a summary tagged with how it was produced
type Result struct {
	Summary  entities.MeetingSummary `json:"summary"`
	Outcome  Outcome                 `json:"outcome"`
	Warnings []string                `json:"warnings,omitempty"`
	Attempts []Attempt               `json:"attempts,omitempty"`
	Cached   bool                    `json:"cached"`
}

// Degraded reports whether the summary is the synthesized fallback
func (r Result) Degraded() bool {
	return r.Outcome == OutcomeDegraded
}

// Request is the input of one extraction
type Request struct {
	Text         string
	Language     string
	Model        string
	Temperature  float64
	ExtraContext string
}

// Notices placed in the fallback summary
const (
	FallbackTitle     = "Processed Transcript"
	FallbackKeyPoint  = "Key points could not be extracted automatically"
	FallbackInsight   = "Review the full transcript manually"
	FallbackEmptyText = "The transcript was empty, nothing could be summarized."
	fallbackEllipsis  = "..."
	defaultPreviewLen = 500
)

// Extractor turns a transcript into a MeetingSummary. It always produces a
// summary unless credentials are missing.
type Extractor struct {
	chat         ChatCompleter
	maxTokens    int
	previewChars int
	logger       *zap.Logger
}

// NewExtractor creates an extractor. maxTokens <= 0 leaves the limit to the
// provider; previewChars <= 0 uses 500.
func NewExtractor(chat ChatCompleter, maxTokens, previewChars int, l *zap.Logger) *Extractor {
	if previewChars <= 0 {
		previewChars = defaultPreviewLen
	}
	return &Extractor{
		chat:         chat,
		maxTokens:    maxTokens,
		previewChars: previewChars,
		logger:       logger.OrNop(l),
	}
}

// ClampTemperature limits t to [0, 1]. NaN becomes 0.
func ClampTemperature(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Extract runs Primary -> (BestEffortExtract) -> RetryNoConstraint ->
// (BestEffortExtract) -> Fallback, stopping at the first state that yields
// a valid summary.
func (e *Extractor) Extract(ctx context.Context, req Request) (Result, error) {
	if t := ClampTemperature(req.Temperature); t != req.Temperature {
		e.logger.Warn("⚠️ Temperature out of range, clamped",
			zap.Float64("requested", req.Temperature),
			zap.Float64("used", t))
		req.Temperature = t
	}

	var (
		res     Result
		content string
		retried bool
		state   = StatePrimary
	)

	fail := func(s State, err error) {
		res.Attempts = append(res.Attempts, Attempt{State: s.String(), Error: err.Error()})
		e.logger.Warn("⚠️ Summary extraction step failed",
			zap.String("state", s.String()),
			zap.String("model", req.Model),
			zap.Error(err))
	}

	if strings.TrimSpace(req.Text) == "" {
		fail(state, entities.ErrEmptyTranscript)
		state = StateFallback
	}

	for state != StateDone {
		switch state {
		case StatePrimary:
			out, err := e.complete(ctx, req, true)
			if err != nil {
				if stdErrors.Is(err, ai.ErrMissingAPIKey) {
					return Result{}, upstream.MissingCredentials(ai.ServiceOpenAI)
				}
				fail(state, err)
				state = StateRetryNoConstraint
				continue
			}
			content = out
			sum, warnings, err := ParseStrict(out)
			if err != nil {
				fail(state, err)
				state = StateBestEffortExtract
				continue
			}
			res.Summary, res.Warnings, res.Outcome = sum, warnings, OutcomeParsed
			state = StateDone

		case StateBestEffortExtract:
			sum, warnings, err := ParseBestEffort(content)
			if err != nil {
				fail(state, err)
				if retried {
					state = StateFallback
				} else {
					state = StateRetryNoConstraint
				}
				continue
			}
			res.Summary, res.Warnings = sum, warnings
			res.Outcome = OutcomeRecovered
			if retried {
				res.Outcome = OutcomeRetried
			}
			state = StateDone

		case StateRetryNoConstraint:
			retried = true
			out, err := e.complete(ctx, req, false)
			if err != nil {
				fail(state, err)
				state = StateFallback
				continue
			}
			content = out
			sum, warnings, err := ParseStrict(out)
			if err != nil {
				fail(state, err)
				state = StateBestEffortExtract
				continue
			}
			res.Summary, res.Warnings, res.Outcome = sum, warnings, OutcomeRetried
			state = StateDone

		case StateFallback:
			res.Summary = Fallback(req.Text, e.previewChars)
			res.Outcome = OutcomeDegraded
			e.logger.Warn("⚠️ Using fallback summary built from the transcript",
				zap.Int("attempts", len(res.Attempts)))
			state = StateDone
		}
	}

	res.Summary.Normalize()
	return res, nil
}

func (e *Extractor) complete(ctx context.Context, req Request, jsonMode bool) (string, error) {
	chatReq := ai.ChatRequest{
		Model: req.Model,
		Messages: []ai.ChatMessage{
			{Role: "system", Content: systemPrompt(req.Language)},
			{Role: "user", Content: userPrompt(req.Text, req.ExtraContext)},
		},
		Temperature: req.Temperature,
		MaxTokens:   e.maxTokens,
	}
	if jsonMode {
		chatReq.ResponseFormat = ai.JSONObject()
	}
	return e.chat.CompleteChat(ctx, chatReq)
}

// Fallback synthesizes a summary from the transcript: its first n
// characters (with an ellipsis when cut), plus one notice each in key
// points and insights.
func Fallback(text string, n int) entities.MeetingSummary {
	if n <= 0 {
		n = defaultPreviewLen
	}
	preview := text
	switch {
	case strings.TrimSpace(text) == "":
		preview = FallbackEmptyText
	case utf8.RuneCountInString(text) > n:
		preview = truncateRunes(text, n) + fallbackEllipsis
	}

	title := FallbackTitle
	s := entities.MeetingSummary{
		Title:       &title,
		Summary:     preview,
		KeyPoints:   []string{FallbackKeyPoint},
		Decisions:   []string{},
		ActionItems: []entities.ActionItem{},
		Insights:    []string{FallbackInsight},
	}
	return s
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
