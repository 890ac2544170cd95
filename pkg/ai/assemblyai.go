package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

const ServiceAssemblyAI = "assemblyai"

// AssemblyAIClient transcribes local audio files through the official SDK,
// with speaker labels enabled.
type AssemblyAIClient struct {
	apiKey string
	client *aai.Client
	logger *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		apiKey: apiKey,
		client: aai.NewClient(apiKey),
		logger: logger,
	}
}

// Transcribe uploads the file, waits for the transcript and returns it
// re-encoded as a segmented JSON envelope: {text, language, segments}.
// Utterance times are converted from milliseconds to seconds.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, req TranscriptionRequest) (*RawTranscription, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	f, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	if c.logger != nil {
		c.logger.Info("📤 Uploading file to AssemblyAI", zap.String("file", req.FilePath))
	}
	audioURL, err := c.client.Upload(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("assemblyai upload failed: %w", err)
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if req.Language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(req.Language)
	}
	if model := SpeechModel(req.Model); model != "" {
		params.SpeechModel = aai.SpeechModel(model)
	}
	if words := boostWords(req.Prompt); len(words) > 0 {
		params.WordBoost = words
	}

	if c.logger != nil {
		c.logger.Info("🎙️ Starting transcription",
			zap.String("provider", ServiceAssemblyAI),
			zap.String("model", req.Model))
	}
	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, &APIError{Service: ServiceAssemblyAI, StatusCode: 422, Body: msg}
	}

	body, err := json.Marshal(envelopeFromTranscript(transcript))
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info("✅ Received full transcript from AssemblyAI",
			zap.Int("utterances", len(transcript.Utterances)))
	}

	return &RawTranscription{
		Provider:       ServiceAssemblyAI,
		ResponseFormat: req.ResponseFormat,
		ContentType:    "application/json",
		Body:           body,
	}, nil
}

// SpeechModel maps "assemblyai-best" style model names to the SDK's
// speech model identifier. Names of other providers' models, and the bare
// "assemblyai", give an empty result, meaning the account default.
func SpeechModel(model string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	if !strings.HasPrefix(m, ServiceAssemblyAI) {
		return ""
	}
	return strings.TrimLeft(strings.TrimPrefix(m, ServiceAssemblyAI), "-_:")
}

func boostWords(prompt string) []string {
	var words []string
	for _, w := range strings.Split(prompt, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

type envelopeSegment struct {
	Start   *float64 `json:"start,omitempty"`
	End     *float64 `json:"end,omitempty"`
	Text    string   `json:"text"`
	Speaker *string  `json:"speaker,omitempty"`
}

type envelope struct {
	Text     string            `json:"text"`
	Language string            `json:"language,omitempty"`
	Segments []envelopeSegment `json:"segments"`
}

func envelopeFromTranscript(t aai.Transcript) envelope {
	env := envelope{Language: string(t.LanguageCode)}
	if t.Text != nil {
		env.Text = *t.Text
	}
	for _, u := range t.Utterances {
		seg := envelopeSegment{
			Start:   millisToSeconds(u.Start),
			End:     millisToSeconds(u.End),
			Speaker: u.Speaker,
		}
		if u.Text != nil {
			seg.Text = *u.Text
		}
		env.Segments = append(env.Segments, seg)
	}
	return env
}

func millisToSeconds(ms *int64) *float64 {
	if ms == nil {
		return nil
	}
	s := float64(*ms) / 1000
	return &s
}
