package transcription

import "github.com/johnquangdev/meeting-scribe/internal/domain/entities"

// TranscribeResponse is returned by POST /v1/transcriptions
type TranscribeResponse struct {
	Transcript entities.Transcript `json:"transcript"`
	PlainText  string              `json:"plain_text"`
	Model      string              `json:"model"`
	Format     string              `json:"format"`
	Degraded   bool                `json:"degraded"`
	Warnings   []string            `json:"warnings,omitempty"`
	ArchivedAs string              `json:"archived_as,omitempty"`
}
