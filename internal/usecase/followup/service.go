// Package followup drafts the e-mail sent to participants after a meeting.
package followup

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/upstream"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/logger"
)

const (
	temperature = 0.3
	maxTokens   = 2000

	defaultGreeting  = "Hello everyone,"
	defaultNextSteps = "Looking forward to your feedback on the next steps we discussed."
	defaultClosing   = "Best regards,"
	defaultSender    = "The team"
)

// Meta is optional information about the meeting and the sender
type Meta struct {
	MeetingDate string
	SenderName  string
	CompanyName string
	Context     string
}

// Service generates follow-up e-mails from meeting summaries
type Service struct {
	chat   summary.ChatCompleter
	model  string
	logger *zap.Logger
}

// NewService creates a follow-up generator using the given chat model
func NewService(chat summary.ChatCompleter, model string, l *zap.Logger) *Service {
	return &Service{chat: chat, model: model, logger: logger.OrNop(l)}
}

// rawEmail keeps track of which fields the model actually returned
type rawEmail struct {
	Subject      *string   `json:"subject"`
	Greeting     *string   `json:"greeting"`
	Summary      *string   `json:"summary"`
	KeyDecisions *[]string `json:"key_decisions"`
	ActionItems  *[]string `json:"action_items"`
	NextSteps    *string   `json:"next_steps"`
	Closing      *string   `json:"closing"`
}

// Generate drafts a follow-up e-mail. Upstream or parse failures fall back
// to an e-mail assembled from the summary; only missing credentials are
// returned as an error.
func (s *Service) Generate(ctx context.Context, sum entities.MeetingSummary, meta Meta) (entities.FollowUpEmail, error) {
	s.logger.Info("📧 Generating follow-up e-mail", zap.String("model", s.model))

	content, err := s.chat.CompleteChat(ctx, ai.ChatRequest{
		Model: s.model,
		Messages: []ai.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(sum, meta)},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: ai.JSONObject(),
	})
	if err != nil {
		if stdErrors.Is(err, ai.ErrMissingAPIKey) {
			return entities.FollowUpEmail{}, upstream.MissingCredentials(ai.ServiceOpenAI)
		}
		s.logger.Warn("⚠️ Follow-up generation failed, using fallback e-mail", zap.Error(err))
		return Fallback(sum, meta), nil
	}

	raw, err := parse(content)
	if err != nil {
		s.logger.Warn("⚠️ Could not parse follow-up e-mail, using fallback", zap.Error(err))
		return Fallback(sum, meta), nil
	}
	return merge(raw, sum, meta), nil
}

func parse(content string) (rawEmail, error) {
	var raw rawEmail
	err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw)
	if err == nil {
		return raw, nil
	}
	obj, ok := summary.ExtractJSONObject(content)
	if !ok {
		return rawEmail{}, fmt.Errorf("no JSON object in response: %w", err)
	}
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return rawEmail{}, err
	}
	return raw, nil
}

// merge fills every field the model left out from the summary
func merge(raw rawEmail, sum entities.MeetingSummary, meta Meta) entities.FollowUpEmail {
	fb := Fallback(sum, meta)
	email := entities.FollowUpEmail{
		Subject:      pick(raw.Subject, fb.Subject),
		Greeting:     pick(raw.Greeting, defaultGreeting),
		Summary:      pick(raw.Summary, fb.Summary),
		KeyDecisions: fb.KeyDecisions,
		ActionItems:  fb.ActionItems,
		NextSteps:    pick(raw.NextSteps, defaultNextSteps),
		Closing:      pick(raw.Closing, defaultClosing),
		MeetingDate:  meta.MeetingDate,
	}
	if raw.KeyDecisions != nil {
		email.KeyDecisions = *raw.KeyDecisions
	}
	if raw.ActionItems != nil {
		email.ActionItems = *raw.ActionItems
	}
	email.Normalize()
	return email
}

func pick(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}

// Fallback builds a follow-up e-mail from the summary alone
func Fallback(sum entities.MeetingSummary, meta Meta) entities.FollowUpEmail {
	sender := meta.SenderName
	if sender == "" {
		sender = defaultSender
	}
	email := entities.FollowUpEmail{
		Subject:      "Follow-up: " + titleOf(sum),
		Greeting:     defaultGreeting,
		Summary:      sum.Summary,
		KeyDecisions: append([]string(nil), sum.Decisions...),
		ActionItems:  FormatActionItems(sum.ActionItems),
		NextSteps:    defaultNextSteps,
		Closing:      defaultClosing + "\n" + sender,
		MeetingDate:  meta.MeetingDate,
	}
	email.Normalize()
	return email
}

// FormatActionItems renders each item as "description (owner) - due date"
func FormatActionItems(items []entities.ActionItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		line := item.Description
		if item.Owner != nil && *item.Owner != "" {
			line += " (" + *item.Owner + ")"
		}
		if item.DueDate != nil && *item.DueDate != "" {
			line += " - by " + *item.DueDate
		}
		out = append(out, line)
	}
	return out
}

func titleOf(sum entities.MeetingSummary) string {
	if sum.Title == nil || *sum.Title == "" {
		return "Meeting"
	}
	return *sum.Title
}
