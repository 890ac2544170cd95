package transcription

import (
	"context"
	stdErrors "errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

type fakeTranscriber struct {
	calls int
	last  ai.TranscriptionRequest
	raw   *ai.RawTranscription
	err   error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, req ai.TranscriptionRequest) (*ai.RawTranscription, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	out := *f.raw
	out.ResponseFormat = req.ResponseFormat
	return &out, nil
}

type memoryHistory struct {
	transcripts []entities.TranscriptRecord
}

func (m *memoryHistory) SaveTranscript(ctx context.Context, r *entities.TranscriptRecord) error {
	m.transcripts = append(m.transcripts, *r)
	return nil
}
func (m *memoryHistory) GetTranscript(ctx context.Context, id uuid.UUID) (*entities.TranscriptRecord, error) {
	return nil, nil
}
func (m *memoryHistory) ListTranscripts(ctx context.Context, f entities.HistoryFilter) ([]entities.TranscriptRecord, error) {
	return m.transcripts, nil
}
func (m *memoryHistory) SaveSummary(ctx context.Context, r *entities.SummaryRecord) error { return nil }
func (m *memoryHistory) GetSummary(ctx context.Context, id uuid.UUID) (*entities.SummaryRecord, error) {
	return nil, nil
}
func (m *memoryHistory) ListSummaries(ctx context.Context, f entities.HistoryFilter) ([]entities.SummaryRecord, error) {
	return nil, nil
}

var defaults = config.TranscribeConfig{Provider: "openai", Model: "gpt-4o-transcribe", Language: "pt", Format: "json"}

func TestTranscribeFile_AppliesDefaultsAndTrimsPrompt(t *testing.T) {
	fake := &fakeTranscriber{raw: &ai.RawTranscription{ContentType: "application/json", Body: []byte(`{"text":"olá"}`)}}
	history := &memoryHistory{}
	svc := NewService(fake, "openai", defaults, history, nil)
	path := writeFile(t, "m.mp3", []byte("x"))

	res, err := svc.TranscribeFile(context.Background(), path, Options{Language: "pt", Prompt: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.last.Model != "gpt-4o-transcribe" || fake.last.ResponseFormat != "json" {
		t.Fatalf("defaults not applied: %+v", fake.last)
	}
	if fake.last.Prompt != "" {
		t.Fatalf("blank prompt should be omitted, got %q", fake.last.Prompt)
	}
	want := entities.Transcript{Text: "olá", Language: "pt", SourcePath: &path}
	if !reflect.DeepEqual(res.Transcript, want) {
		t.Fatalf("transcript = %+v", res.Transcript)
	}
	if len(history.transcripts) != 1 || history.transcripts[0].Model != "gpt-4o-transcribe" {
		t.Fatalf("history not recorded: %+v", history.transcripts)
	}
}

func TestTranscribeFile_ValidationHappensBeforeCall(t *testing.T) {
	fake := &fakeTranscriber{raw: &ai.RawTranscription{}}
	svc := NewService(fake, "openai", defaults, nil, nil)

	cases := []struct {
		name string
		path string
		opts Options
		want errors.ErrorCode
	}{
		{"missing file", "/does/not/exist.mp3", Options{}, errors.ErrorCode_NOT_FOUND},
		{"not audio", writeFile(t, "notes.txt", []byte("hello")), Options{}, errors.ErrorCode_UNSUPPORTED_FORMAT},
		{"incompatible", writeFile(t, "a.mp3", []byte("x")), Options{Model: "gpt-4o-mini-transcribe", Format: "srt"}, errors.ErrorCode_INCOMPATIBLE_FORMAT},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.TranscribeFile(context.Background(), tc.path, tc.opts)
			if got := codeOf(t, err); got != tc.want {
				t.Fatalf("code = %s, want %s", got, tc.want)
			}
		})
	}
	if fake.calls != 0 {
		t.Fatalf("no upstream call expected, got %d", fake.calls)
	}
}

func TestTranscribeFile_UpstreamFailurePropagates(t *testing.T) {
	fake := &fakeTranscriber{err: &ai.APIError{Service: "openai", StatusCode: http.StatusBadGateway}}
	svc := NewService(fake, "openai", defaults, nil, nil)

	_, err := svc.TranscribeFile(context.Background(), writeFile(t, "a.wav", []byte("x")), Options{})
	if got := codeOf(t, err); got != errors.ErrorCode_UPSTREAM_FAILURE {
		t.Fatalf("code = %s", got)
	}
	var apiErr *ai.APIError
	if !stdErrors.As(err, &apiErr) {
		t.Fatalf("cause should stay reachable")
	}
}

func TestTranscribeFile_MissingCredentials(t *testing.T) {
	fake := &fakeTranscriber{err: ai.ErrMissingAPIKey}
	svc := NewService(fake, "openai", defaults, nil, nil)

	_, err := svc.TranscribeFile(context.Background(), writeFile(t, "a.wav", []byte("x")), Options{})
	if got := codeOf(t, err); got != errors.ErrorCode_CONFIGURATION {
		t.Fatalf("code = %s", got)
	}
}

func TestTranscribeFile_EmptyLanguageUsesConfiguredFallback(t *testing.T) {
	fake := &fakeTranscriber{raw: &ai.RawTranscription{ContentType: "application/json", Body: []byte(`{"text":"ola"}`)}}
	svc := NewService(fake, "openai", defaults, nil, nil)

	for _, lang := range []string{"", "  "} {
		res, err := svc.TranscribeFile(context.Background(), writeFile(t, "a.mp3", []byte("x")), Options{Language: lang})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fake.last.Language != "pt" {
			t.Fatalf("sent language = %q, want %q", fake.last.Language, "pt")
		}
		if res.Transcript.Language != "pt" {
			t.Fatalf("transcript language = %q, want %q", res.Transcript.Language, "pt")
		}
	}
}

func TestTranscribeFile_AssemblyAIDefaultsToItsOwnModel(t *testing.T) {
	fake := &fakeTranscriber{raw: &ai.RawTranscription{
		ContentType: "application/json",
		Body:        []byte(`{"text":"hi there","language":"en","segments":[{"start":0,"end":1.2,"text":"hi there","speaker":"A"}]}`),
	}}
	svc := NewService(fake, config.ProviderAssemblyAI, defaults, nil, nil)

	res, err := svc.TranscribeFile(context.Background(), writeFile(t, "a.mp3", []byte("x")), Options{Format: "verbose_json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.last.Model != AssemblyAIModel {
		t.Fatalf("model = %q, want %q", fake.last.Model, AssemblyAIModel)
	}
	if got := ai.SpeechModel(fake.last.Model); got != "" {
		t.Fatalf("speech model = %q, want account default", got)
	}
	if len(res.Transcript.Segments) != 1 {
		t.Fatalf("segments dropped: %+v", res.Transcript)
	}
	if sp := res.Transcript.Segments[0].Speaker; sp == nil || *sp != "A" {
		t.Fatalf("speaker not kept: %+v", res.Transcript.Segments[0])
	}

	explicit := NewService(fake, config.ProviderAssemblyAI,
		config.TranscribeConfig{Model: "assemblyai-best", Language: "en", Format: "json"}, nil, nil)
	if _, err := explicit.TranscribeFile(context.Background(), writeFile(t, "b.mp3", []byte("x")), Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.last.Model != "assemblyai-best" {
		t.Fatalf("configured AssemblyAI model replaced: %q", fake.last.Model)
	}
}

func TestTranscribeFile_VerboseWithWhisper(t *testing.T) {
	fake := &fakeTranscriber{raw: &ai.RawTranscription{
		ContentType: "application/json",
		Body:        []byte(`{"text":"a","language":"portuguese","segments":[{"start":0,"end":1,"text":"a"}]}`),
	}}
	svc := NewService(fake, "openai", defaults, nil, nil)

	res, err := svc.TranscribeFile(context.Background(), writeFile(t, "a.m4a", []byte("x")), Options{Model: "whisper-1", Format: "verbose_json", Language: "pt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Transcript.Segments) != 1 || res.Transcript.Language != "portuguese" {
		t.Fatalf("unexpected transcript %+v", res.Transcript)
	}
}
