// Package archive copies transcripts and summaries to an object store.
package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

// Object name prefixes
const (
	PrefixTranscripts = "transcripts/"
	PrefixSummaries   = "summaries/"
	PrefixFollowUps   = "followups/"
)

// ObjectStore is implemented by the MinIO client and the local store
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
	URL(ctx context.Context, name string, expiry time.Duration) (string, error)
	Location() string
}

// Service archives generated outputs. A nil store disables archiving.
type Service struct {
	store  ObjectStore
	expiry time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates an archive service. store may be nil.
func NewService(store ObjectStore, urlExpiry time.Duration, l *zap.Logger) *Service {
	if urlExpiry <= 0 {
		urlExpiry = time.Hour
	}
	return &Service{store: store, expiry: urlExpiry, now: time.Now, logger: logger.OrNop(l)}
}

// Enabled reports whether a store is configured
func (s *Service) Enabled() bool {
	return s != nil && s.store != nil
}

// Expiry is the lifetime of URLs returned by URL
func (s *Service) Expiry() time.Duration {
	return s.expiry
}

// ObjectName builds "<prefix><yyyy/mm/dd>/<base>" for a file name
func (s *Service) ObjectName(prefix, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return prefix + s.now().UTC().Format("2006/01/02") + "/" + base
}

// Store uploads data and returns the object name
func (s *Service) Store(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if !s.Enabled() {
		return "", errDisabled()
	}
	if err := s.store.Put(ctx, name, contentType, data); err != nil {
		return "", errors.ErrStorageFailed("put "+name, err)
	}
	s.logger.Info("📦 Archived output",
		zap.String("object", name),
		zap.Int("bytes", len(data)),
		zap.String("location", s.store.Location()))
	return name, nil
}

// List returns the archived object names under prefix
func (s *Service) List(ctx context.Context, prefix string) ([]string, error) {
	if !s.Enabled() {
		return nil, errDisabled()
	}
	files, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, errors.ErrStorageFailed("list "+prefix, err)
	}
	return files, nil
}

// URL returns a download URL for an archived object
func (s *Service) URL(ctx context.Context, name string) (string, error) {
	if !s.Enabled() {
		return "", errDisabled()
	}
	if strings.TrimSpace(name) == "" {
		return "", errors.ErrInvalidArgument("object name is required")
	}
	url, err := s.store.URL(ctx, name, s.expiry)
	if err != nil {
		return "", errors.ErrStorageFailed("url "+name, err)
	}
	return url, nil
}

func errDisabled() errors.AppError {
	return errors.ErrConfiguration("output archive is not configured").
		WithHint(fmt.Sprintf("set STORAGE_TYPE to %q or %q", "local", "minio"))
}
