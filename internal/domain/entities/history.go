package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptRecord is a stored transcription run
type TranscriptRecord struct {
	ID             uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key"`
	SourceName     string                         `json:"source_name" gorm:"type:varchar(512)"`
	Provider       string                         `json:"provider" gorm:"type:varchar(32)"`
	Model          string                         `json:"model" gorm:"type:varchar(128)"`
	ResponseFormat string                         `json:"response_format" gorm:"type:varchar(32)"`
	Language       string                         `json:"language" gorm:"type:varchar(20)"`
	Degraded       bool                           `json:"degraded" gorm:"default:false"`
	Transcript     datatypes.JSONType[Transcript] `json:"transcript" gorm:"type:jsonb"`
	CreatedAt      time.Time                      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by TranscriptRecord
func (TranscriptRecord) TableName() string {
	return "transcript_records"
}

// SummaryRecord is a stored summarization run
type SummaryRecord struct {
	ID          uuid.UUID                          `json:"id" gorm:"type:uuid;primary_key"`
	TextHash    string                             `json:"text_hash" gorm:"type:varchar(64);index"`
	Model       string                             `json:"model" gorm:"type:varchar(128)"`
	Temperature float64                            `json:"temperature"`
	Outcome     string                             `json:"outcome" gorm:"type:varchar(32)"`
	Summary     datatypes.JSONType[MeetingSummary] `json:"summary" gorm:"type:jsonb"`
	CreatedAt   time.Time                          `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by SummaryRecord
func (SummaryRecord) TableName() string {
	return "summary_records"
}

// HistoryFilter narrows history listings
type HistoryFilter struct {
	Limit  int
	Offset int
}
