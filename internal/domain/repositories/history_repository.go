package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// HistoryRepository defines persistence operations for past transcription
// and summarization runs
type HistoryRepository interface {
	// Transcripts
	SaveTranscript(ctx context.Context, r *entities.TranscriptRecord) error
	GetTranscript(ctx context.Context, id uuid.UUID) (*entities.TranscriptRecord, error)
	ListTranscripts(ctx context.Context, filter entities.HistoryFilter) ([]entities.TranscriptRecord, error)

	// Summaries
	SaveSummary(ctx context.Context, r *entities.SummaryRecord) error
	GetSummary(ctx context.Context, id uuid.UUID) (*entities.SummaryRecord, error)
	ListSummaries(ctx context.Context, filter entities.HistoryFilter) ([]entities.SummaryRecord, error)
}
