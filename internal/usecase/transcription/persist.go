package transcription

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// Output formats for SaveTranscript
const (
	OutputJSON = "json"
	OutputText = "txt"
)

// MarshalTranscript renders the persisted JSON form: 2-space indentation,
// UTF-8 kept as is.
func MarshalTranscript(t entities.Transcript) ([]byte, error) {
	t.Normalize()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OutputFormatFor infers the output format from the file extension
func OutputFormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return OutputJSON
	}
	return OutputText
}

// SaveTranscript writes t to path as JSON or plain text, creating parent
// directories. An empty format is inferred from the extension.
func SaveTranscript(t entities.Transcript, path, format string) error {
	if format == "" {
		format = OutputFormatFor(path)
	}

	var data []byte
	switch format {
	case OutputJSON:
		b, err := MarshalTranscript(t)
		if err != nil {
			return errors.ErrInternal(err)
		}
		data = b
	case OutputText:
		data = []byte(t.Text)
	default:
		return errors.ErrInvalidArgument(fmt.Sprintf("unknown transcript output format %q", format))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.ErrStorageFailed("create output directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ErrStorageFailed("write transcript", err)
	}
	return nil
}

// LoadTranscript reads a transcript saved as .json or .txt. Plain text
// files get defaultLanguage, no segments, and path as source.
func LoadTranscript(path, defaultLanguage string) (entities.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.Transcript{}, errors.ErrNotFound(path).
				WithHint("check the path of the transcript file")
		}
		return entities.Transcript{}, errors.ErrStorageFailed("read transcript", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var t entities.Transcript
		if err := json.Unmarshal(data, &t); err != nil {
			return entities.Transcript{}, errors.ErrInvalidArgument(fmt.Sprintf("%s is not a transcript JSON file", path)).
				WithDetail("cause", err.Error())
		}
		if t.Language == "" {
			t.Language = defaultLanguage
		}
		t.Normalize()
		return t, nil
	case ".txt":
		return entities.NewTranscript(string(data), defaultLanguage, path), nil
	default:
		return entities.Transcript{}, errors.ErrInvalidArgument(fmt.Sprintf("unsupported transcript file %s", path)).
			WithHint("use a .json or .txt transcript, or an audio file")
	}
}
