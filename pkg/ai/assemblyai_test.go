package ai

import (
	"context"
	"errors"
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

func TestEnvelopeFromTranscript_ConvertsUtterances(t *testing.T) {
	tr := aai.Transcript{
		Text:         strPtr("hello there"),
		LanguageCode: aai.TranscriptLanguageCode("en"),
		Utterances: []aai.TranscriptUtterance{
			{Start: int64Ptr(0), End: int64Ptr(1500), Text: strPtr("hello"), Speaker: strPtr("A")},
			{Start: int64Ptr(1500), End: int64Ptr(2250), Text: strPtr("there"), Speaker: strPtr("B")},
		},
	}

	env := envelopeFromTranscript(tr)
	if env.Text != "hello there" || env.Language != "en" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if len(env.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(env.Segments))
	}
	if *env.Segments[0].End != 1.5 || *env.Segments[1].Start != 1.5 || *env.Segments[1].End != 2.25 {
		t.Fatalf("milliseconds not converted: %+v", env.Segments)
	}
	if *env.Segments[1].Speaker != "B" {
		t.Fatalf("speaker lost")
	}
}

func TestSpeechModel(t *testing.T) {
	tests := map[string]string{
		"assemblyai-best":   "best",
		"assemblyai:nano":   "nano",
		"assemblyai":        "",
		"AssemblyAI-Nano":   "nano",
		"gpt-4o-transcribe": "",
		"whisper-1":         "",
	}
	for in, want := range tests {
		if got := SpeechModel(in); got != want {
			t.Errorf("SpeechModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssemblyAITranscribe_MissingKey(t *testing.T) {
	t.Setenv("ASSEMBLYAI_API_KEY", "")
	client := NewAssemblyAIClient(&config.AssemblyAIConfig{}, nil)

	_, err := client.Transcribe(context.Background(), TranscriptionRequest{FilePath: "x.mp3"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
