package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// TranscriptItem is one entry of GET /v1/history/transcripts
type TranscriptItem struct {
	ID             uuid.UUID           `json:"id"`
	SourceName     string              `json:"source_name"`
	Provider       string              `json:"provider"`
	Model          string              `json:"model"`
	ResponseFormat string              `json:"response_format"`
	Language       string              `json:"language"`
	Degraded       bool                `json:"degraded"`
	Preview        string              `json:"preview"`
	Transcript     entities.Transcript `json:"transcript"`
	CreatedAt      time.Time           `json:"created_at"`
}

// SummaryItem is one entry of GET /v1/history/summaries
type SummaryItem struct {
	ID          uuid.UUID               `json:"id"`
	Title       string                  `json:"title"`
	Model       string                  `json:"model"`
	Temperature float64                 `json:"temperature"`
	Outcome     string                  `json:"outcome"`
	Summary     entities.MeetingSummary `json:"summary"`
	CreatedAt   time.Time               `json:"created_at"`
}
