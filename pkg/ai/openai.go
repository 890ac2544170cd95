package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

const ServiceOpenAI = "openai"

// OpenAIClient is a minimal client for the OpenAI chat and audio endpoints.
// It is built once at startup and shared.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	retrier *retrier
	logger  *zap.Logger
}

// NewOpenAIClient creates a client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewOpenAIClient(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	var (
		apiKey     string
		base       string
		timeout    = 120 * time.Second
		maxRetries = 3
	)
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout.Duration()
		}
		maxRetries = cfg.MaxRetries
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if base == "" {
		base = "https://api.openai.com/v1"
	}

	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		retrier: &retrier{
			service:    ServiceOpenAI,
			client:     &http.Client{Timeout: timeout},
			maxRetries: maxRetries,
			interval:   time.Second,
			logger:     logger,
		},
		logger: logger,
	}
}

// ChatMessage is one turn of a chat conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat constrains the completion output
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// JSONObject asks the model for a single JSON object.
func JSONObject() *ResponseFormat {
	return &ResponseFormat{Type: "json_object"}
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompleteChat sends a chat completion and returns the assistant content.
func (c *OpenAIClient) CompleteChat(ctx context.Context, req ChatRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.retrier.do(ctx, func() (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		r.Header.Set("Authorization", "Bearer "+c.apiKey)
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	})
	if err != nil {
		return "", err
	}

	var cr ChatResponse
	if err := json.Unmarshal(resp.body, &cr); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	if c.logger != nil {
		c.logger.Debug("chat completion finished",
			zap.String("model", req.Model),
			zap.Bool("json_mode", req.ResponseFormat != nil),
			zap.Int("content_length", len(cr.Choices[0].Message.Content)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return cr.Choices[0].Message.Content, nil
}

// TranscriptionRequest is the input of a speech-to-text call
type TranscriptionRequest struct {
	FilePath       string
	Model          string
	Language       string
	Prompt         string
	ResponseFormat string
}

// RawTranscription is the untouched upstream answer. Interpreting it is left
// to the caller because its shape depends on the response format.
type RawTranscription struct {
	Provider       string
	ResponseFormat string
	ContentType    string
	Body           []byte
}

// Transcribe uploads an audio file to /audio/transcriptions.
func (c *OpenAIClient) Transcribe(ctx context.Context, req TranscriptionRequest) (*RawTranscription, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	audio, err := os.ReadFile(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("🎙️ Starting transcription",
			zap.String("file", filepath.Base(req.FilePath)),
			zap.String("model", req.Model),
			zap.String("format", req.ResponseFormat),
			zap.Int("bytes", len(audio)))
	}

	start := time.Now()
	resp, err := c.retrier.do(ctx, func() (*http.Request, error) {
		body, contentType, err := transcriptionForm(req, audio)
		if err != nil {
			return nil, err
		}
		r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Authorization", "Bearer "+c.apiKey)
		r.Header.Set("Content-Type", contentType)
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info("✅ Transcription received",
			zap.String("model", req.Model),
			zap.Int("response_bytes", len(resp.body)),
			zap.Duration("elapsed", time.Since(start)))
	}

	return &RawTranscription{
		Provider:       ServiceOpenAI,
		ResponseFormat: req.ResponseFormat,
		ContentType:    resp.contentType,
		Body:           resp.body,
	}, nil
}

func transcriptionForm(req TranscriptionRequest, audio []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"model", req.Model},
		{"response_format", req.ResponseFormat},
		{"language", req.Language},
		{"prompt", req.Prompt},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
