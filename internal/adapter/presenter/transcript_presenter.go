package presenter

import (
	"fmt"
	"math"
	"strings"

	transcriptionDTO "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/transcription"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/transcription"
)

// ToTranscribeResponse converts a normalization result to its API response
func ToTranscribeResponse(res *transcription.Result, model, format string) *transcriptionDTO.TranscribeResponse {
	if res == nil {
		return nil
	}
	return &transcriptionDTO.TranscribeResponse{
		Transcript: res.Transcript,
		PlainText:  TranscriptText(res.Transcript),
		Model:      model,
		Format:     format,
		Degraded:   res.Degraded,
		Warnings:   res.Warnings,
	}
}

// TranscriptText renders a transcript for reading: one line per segment
// with its time range and speaker, or the plain text when there are no
// segments.
func TranscriptText(t entities.Transcript) string {
	if !t.HasSegments() {
		return t.Text
	}
	var b strings.Builder
	for _, seg := range t.Segments {
		start, end := seg.DisplayStart(), seg.DisplayEnd()
		if end < start {
			end = start
		}
		fmt.Fprintf(&b, "[%s - %s] ", Timestamp(start), Timestamp(end))
		if seg.Speaker != nil && *seg.Speaker != "" {
			b.WriteString(*seg.Speaker + ": ")
		}
		b.WriteString(strings.TrimSpace(seg.Text) + "\n")
	}
	return b.String()
}

// Timestamp formats seconds as mm:ss, or hh:mm:ss past one hour
func Timestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
