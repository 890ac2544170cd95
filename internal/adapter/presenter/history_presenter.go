package presenter

import (
	"unicode/utf8"

	historyDTO "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/history"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

const previewChars = 160

// ToTranscriptItems converts stored transcripts to list items
func ToTranscriptItems(records []entities.TranscriptRecord) []historyDTO.TranscriptItem {
	items := make([]historyDTO.TranscriptItem, len(records))
	for i, r := range records {
		t := r.Transcript.Data()
		items[i] = historyDTO.TranscriptItem{
			ID:             r.ID,
			SourceName:     r.SourceName,
			Provider:       r.Provider,
			Model:          r.Model,
			ResponseFormat: r.ResponseFormat,
			Language:       r.Language,
			Degraded:       r.Degraded,
			Preview:        preview(t.Text),
			Transcript:     t,
			CreatedAt:      r.CreatedAt,
		}
	}
	return items
}

// ToSummaryItems converts stored summaries to list items
func ToSummaryItems(records []entities.SummaryRecord) []historyDTO.SummaryItem {
	items := make([]historyDTO.SummaryItem, len(records))
	for i, r := range records {
		s := r.Summary.Data()
		s.Normalize()
		items[i] = historyDTO.SummaryItem{
			ID:          r.ID,
			Title:       s.DisplayTitle(),
			Model:       r.Model,
			Temperature: r.Temperature,
			Outcome:     r.Outcome,
			Summary:     s,
			CreatedAt:   r.CreatedAt,
		}
	}
	return items
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewChars {
		return text
	}
	return string([]rune(text)[:previewChars]) + "..."
}
