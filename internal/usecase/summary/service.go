package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

// Cache stores serialized summaries by key
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Options are per-call overrides of the configured defaults
type Options struct {
	Model        string
	Temperature  *float64
	ExtraContext string
	Language     string
}

// Service wraps the Extractor with caching and history
type Service struct {
	extractor *Extractor
	defaults  config.SummaryConfig
	cache     Cache
	history   repositories.HistoryRepository
	logger    *zap.Logger
}

// NewService creates a summary service. cache and history may be nil.
func NewService(
	chat ChatCompleter,
	defaults config.SummaryConfig,
	cache Cache,
	history repositories.HistoryRepository,
	l *zap.Logger,
) *Service {
	l = logger.OrNop(l)
	return &Service{
		extractor: NewExtractor(chat, defaults.MaxTokens, defaults.PreviewChars, l),
		defaults:  defaults,
		cache:     cache,
		history:   history,
		logger:    l,
	}
}

// Defaults returns the configured summary defaults
func (s *Service) Defaults() config.SummaryConfig {
	return s.defaults
}

// SummarizeTranscript summarizes t, passing its language to the prompt
// unless opts sets one.
func (s *Service) SummarizeTranscript(ctx context.Context, t entities.Transcript, opts Options) (*Result, error) {
	if opts.Language == "" {
		opts.Language = t.Language
	}
	return s.Summarize(ctx, t.Text, opts)
}

// Summarize produces a MeetingSummary for text. It only fails when
// credentials are missing.
func (s *Service) Summarize(ctx context.Context, text string, opts Options) (*Result, error) {
	req := Request{
		Text:         text,
		Language:     opts.Language,
		Model:        opts.Model,
		Temperature:  s.defaults.Temperature,
		ExtraContext: opts.ExtraContext,
	}
	if req.Model == "" {
		req.Model = s.defaults.Model
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	req.Temperature = ClampTemperature(req.Temperature)

	key := CacheKey(req)
	if cached, ok := s.lookup(ctx, key); ok {
		s.logger.Info("✅ Summary served from cache", zap.String("key", key[:12]))
		return cached, nil
	}

	start := time.Now()
	res, err := s.extractor.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ Summary generated",
		zap.String("model", req.Model),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("attempts", len(res.Attempts)),
		zap.Int("action_items", len(res.Summary.ActionItems)),
		zap.Duration("elapsed", time.Since(start)))

	if !res.Degraded() {
		s.store(ctx, key, res)
	}
	s.record(ctx, key, req, res)
	return &res, nil
}

// CacheKey identifies a summarization request by its inputs
func CacheKey(req Request) string {
	h := sha256.New()
	for _, part := range []string{
		req.Model,
		strconv.FormatFloat(req.Temperature, 'f', -1, 64),
		req.ExtraContext,
		req.Language,
		req.Text,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "summary:" + hex.EncodeToString(h.Sum(nil))
}

func (s *Service) lookup(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("⚠️ Summary cache lookup failed", zap.Error(errors.ErrCacheFailed("get", err)))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var res Result
	if err := json.Unmarshal([]byte(value), &res); err != nil {
		s.logger.Warn("⚠️ Ignoring unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	res.Summary.Normalize()
	res.Cached = true
	return &res, true
}

func (s *Service) store(ctx context.Context, key string, res Result) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.defaults.CacheTTL); err != nil {
		s.logger.Warn("⚠️ Failed to cache summary", zap.Error(errors.ErrCacheFailed("set", err)))
	}
}

func (s *Service) record(ctx context.Context, key string, req Request, res Result) {
	if s.history == nil {
		return
	}
	rec := &entities.SummaryRecord{
		ID:          uuid.New(),
		TextHash:    strings.TrimPrefix(key, "summary:"),
		Model:       req.Model,
		Temperature: req.Temperature,
		Outcome:     string(res.Outcome),
		Summary:     datatypes.NewJSONType(res.Summary),
	}
	if err := s.history.SaveSummary(ctx, rec); err != nil {
		s.logger.Warn("⚠️ Failed to store summary history", zap.Error(errors.ErrDBQueryFailed("insert summary_records", err)))
	}
}
