package transcription

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func TestSaveLoadTranscript_JSONRoundTrip(t *testing.T) {
	src := "/recordings/meeting.mp3"
	speaker := "A"
	original := entities.Transcript{
		Text:     "Olá, reunião começou",
		Language: "pt",
		Segments: []entities.TranscriptSegment{
			{Start: f64(0), End: f64(2.5), Text: "Olá,"},
			{Start: f64(2.5), End: nil, Text: "reunião começou", Speaker: &speaker},
		},
		SourcePath: &src,
	}

	path := filepath.Join(t.TempDir(), "out", "t.json")
	if err := SaveTranscript(original, path, ""); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  \"text\": \"Olá, reunião começou\"") {
		t.Fatalf("expected 2-space indent with raw UTF-8, got:\n%s", data)
	}

	loaded, err := LoadTranscript(path, "en")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestSaveLoadTranscript_NoSegments(t *testing.T) {
	original := entities.Transcript{Text: "x", Language: "pt", Segments: []entities.TranscriptSegment{}}
	path := filepath.Join(t.TempDir(), "t.json")

	if err := SaveTranscript(original, path, OutputJSON); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"segments": null`) {
		t.Fatalf("empty segments must be written as null:\n%s", data)
	}

	loaded, err := LoadTranscript(path, "pt")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Segments != nil {
		t.Fatalf("segments should load as nil")
	}
}

func TestLoadTranscript_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := SaveTranscript(entities.Transcript{Text: "plain words", Language: "pt"}, path, ""); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadTranscript(path, "pt")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Text != "plain words" || loaded.Language != "pt" || loaded.Segments != nil {
		t.Fatalf("unexpected transcript %+v", loaded)
	}
	if loaded.SourcePath == nil || *loaded.SourcePath != path {
		t.Fatalf("source path should be the txt file")
	}
}

func TestLoadTranscript_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTranscript(filepath.Join(dir, "missing.json"), "pt")
	if got := codeOf(t, err); got != errors.ErrorCode_NOT_FOUND {
		t.Fatalf("code = %s", got)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0o644)
	_, err = LoadTranscript(bad, "pt")
	if got := codeOf(t, err); got != errors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("code = %s", got)
	}

	other := filepath.Join(dir, "x.docx")
	os.WriteFile(other, []byte("x"), 0o644)
	_, err = LoadTranscript(other, "pt")
	if got := codeOf(t, err); got != errors.ErrorCode_INVALID_ARGUMENT {
		t.Fatalf("code = %s", got)
	}
}
