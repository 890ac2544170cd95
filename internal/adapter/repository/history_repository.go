package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// HistoryRepository stores transcription and summarization runs
type HistoryRepository struct {
	db *gorm.DB
}

var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// SaveTranscript inserts a transcript record
func (r *HistoryRepository) SaveTranscript(ctx context.Context, rec *entities.TranscriptRecord) error {
	if rec == nil {
		return errors.New("transcript record cannot be nil")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

// GetTranscript retrieves a transcript record by ID, nil when missing
func (r *HistoryRepository) GetTranscript(ctx context.Context, id uuid.UUID) (*entities.TranscriptRecord, error) {
	var rec entities.TranscriptRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListTranscripts returns the newest transcript records first
func (r *HistoryRepository) ListTranscripts(ctx context.Context, filter entities.HistoryFilter) ([]entities.TranscriptRecord, error) {
	records := []entities.TranscriptRecord{}
	err := page(r.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SaveSummary inserts a summary record
func (r *HistoryRepository) SaveSummary(ctx context.Context, rec *entities.SummaryRecord) error {
	if rec == nil {
		return errors.New("summary record cannot be nil")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

// GetSummary retrieves a summary record by ID, nil when missing
func (r *HistoryRepository) GetSummary(ctx context.Context, id uuid.UUID) (*entities.SummaryRecord, error) {
	var rec entities.SummaryRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListSummaries returns the newest summary records first
func (r *HistoryRepository) ListSummaries(ctx context.Context, filter entities.HistoryFilter) ([]entities.SummaryRecord, error) {
	records := []entities.SummaryRecord{}
	err := page(r.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func page(db *gorm.DB, filter entities.HistoryFilter) *gorm.DB {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	return db.Limit(limit).Offset(offset)
}
