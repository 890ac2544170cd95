package summary

import "github.com/johnquangdev/meeting-scribe/internal/domain/entities"

// SummarizeResponse is returned by POST /v1/summaries
type SummarizeResponse struct {
	Summary    entities.MeetingSummary `json:"summary"`
	Markdown   string                  `json:"markdown"`
	Outcome    string                  `json:"outcome"`
	Degraded   bool                    `json:"degraded"`
	Cached     bool                    `json:"cached"`
	Warnings   []string                `json:"warnings,omitempty"`
	ArchivedAs string                  `json:"archived_as,omitempty"`
}

// FollowUpResponse is returned by POST /v1/followups
type FollowUpResponse struct {
	Email entities.FollowUpEmail `json:"email"`
	Text  string                 `json:"text"`
}
