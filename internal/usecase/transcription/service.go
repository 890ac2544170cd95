package transcription

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/upstream"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

// Transcriber is a speech-to-text backend
type Transcriber interface {
	Transcribe(ctx context.Context, req ai.TranscriptionRequest) (*ai.RawTranscription, error)
}

// Options are per-call overrides. Empty fields fall back to the configured
// defaults.
type Options struct {
	Model    string
	Language string
	Format   string
	Prompt   string
}

// Service orchestrates validation, the upstream call and normalization
type Service struct {
	transcriber Transcriber
	provider    string
	defaults    config.TranscribeConfig
	normalizer  *Normalizer
	history     repositories.HistoryRepository
	logger      *zap.Logger
}

// NewService constructs a transcription service. history may be nil.
func NewService(
	transcriber Transcriber,
	provider string,
	defaults config.TranscribeConfig,
	history repositories.HistoryRepository,
	l *zap.Logger,
) *Service {
	l = logger.OrNop(l)
	if provider == "" {
		provider = config.ProviderOpenAI
	}
	if provider == config.ProviderAssemblyAI && !strings.HasPrefix(strings.ToLower(defaults.Model), AssemblyAIModel) {
		defaults.Model = AssemblyAIModel
	}
	return &Service{
		transcriber: transcriber,
		provider:    provider,
		defaults:    defaults,
		normalizer:  NewNormalizer(l),
		history:     history,
		logger:      l,
	}
}

// Defaults returns the configured transcription defaults
func (s *Service) Defaults() config.TranscribeConfig {
	return s.defaults
}

// TranscribeFile validates the input, calls the provider and normalizes the
// answer. Validation errors are returned before any network call; an
// upstream failure is returned as is; interpretation problems only degrade
// the result.
func (s *Service) TranscribeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if opts.Model == "" {
		opts.Model = s.defaults.Model
	}
	if opts.Format == "" {
		opts.Format = s.defaults.Format
	}
	if strings.TrimSpace(opts.Language) == "" {
		opts.Language = s.defaults.Language
	}

	if err := ValidateAudioFile(path); err != nil {
		return nil, err
	}
	if err := ValidateFormatForModel(opts.Model, opts.Format); err != nil {
		return nil, err
	}
	if s.transcriber == nil {
		return nil, upstream.MissingCredentials(s.provider)
	}

	req := ai.TranscriptionRequest{
		FilePath:       path,
		Model:          opts.Model,
		Language:       strings.TrimSpace(opts.Language),
		Prompt:         strings.TrimSpace(opts.Prompt),
		ResponseFormat: opts.Format,
	}

	start := time.Now()
	raw, err := s.transcriber.Transcribe(ctx, req)
	if err != nil {
		s.logger.Error("❌ Transcription failed",
			zap.String("provider", s.provider),
			zap.String("model", opts.Model),
			zap.Error(err))
		return nil, upstream.Classify(s.provider, err)
	}

	res := s.normalizer.Normalize(raw, NormalizeOptions{Language: req.Language, SourcePath: path})

	s.logger.Info("✅ Transcript normalized",
		zap.String("file", filepath.Base(path)),
		zap.String("model", opts.Model),
		zap.String("format", opts.Format),
		zap.Int("chars", len(res.Transcript.Text)),
		zap.Int("segments", len(res.Transcript.Segments)),
		zap.Bool("degraded", res.Degraded),
		zap.Duration("elapsed", time.Since(start)))

	s.record(ctx, path, opts, &res)
	return &res, nil
}

func (s *Service) record(ctx context.Context, path string, opts Options, res *Result) {
	if s.history == nil {
		return
	}
	rec := &entities.TranscriptRecord{
		ID:             uuid.New(),
		SourceName:     filepath.Base(path),
		Provider:       s.provider,
		Model:          opts.Model,
		ResponseFormat: opts.Format,
		Language:       res.Transcript.Language,
		Degraded:       res.Degraded,
		Transcript:     datatypes.NewJSONType(res.Transcript),
	}
	if err := s.history.SaveTranscript(ctx, rec); err != nil {
		s.logger.Warn("⚠️ Failed to store transcript history", zap.Error(errors.ErrDBQueryFailed("insert transcript_records", err)))
	}
}
