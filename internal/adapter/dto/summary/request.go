package summary

import "github.com/johnquangdev/meeting-scribe/internal/domain/entities"

// SummarizeRequest is the body of POST /v1/summaries. Either Text or
// Transcript must be given.
type SummarizeRequest struct {
	Text        string               `json:"text" validate:"required_without=Transcript"`
	Transcript  *entities.Transcript `json:"transcript,omitempty" validate:"required_without=Text"`
	Model       string               `json:"model,omitempty"`
	Temperature *float64             `json:"temperature,omitempty"`
	Context     string               `json:"context,omitempty" validate:"omitempty,max=4000"`
	Language    string               `json:"language,omitempty" validate:"omitempty,max=20"`
	Archive     bool                 `json:"archive,omitempty"`
}

// MarkdownRequest is the body of POST /v1/summaries/markdown
type MarkdownRequest struct {
	Summary entities.MeetingSummary `json:"summary"`
}

// FollowUpRequest is the body of POST /v1/followups
type FollowUpRequest struct {
	Summary     entities.MeetingSummary `json:"summary"`
	MeetingDate string                  `json:"meeting_date,omitempty"`
	SenderName  string                  `json:"sender_name,omitempty" validate:"omitempty,max=200"`
	CompanyName string                  `json:"company_name,omitempty" validate:"omitempty,max=200"`
	Context     string                  `json:"context,omitempty" validate:"omitempty,max=4000"`
}
