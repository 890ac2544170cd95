package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// MarshalSummary renders the persisted JSON form of a summary
func MarshalSummary(s entities.MeetingSummary) ([]byte, error) {
	s.Normalize()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveSummary writes s as indented JSON, creating parent directories
func SaveSummary(s entities.MeetingSummary, path string) error {
	data, err := MarshalSummary(s)
	if err != nil {
		return errors.ErrInternal(err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.ErrStorageFailed("create output directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ErrStorageFailed("write summary", err)
	}
	return nil
}

// LoadSummary reads a summary previously written by SaveSummary
func LoadSummary(path string) (entities.MeetingSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.MeetingSummary{}, errors.ErrNotFound(path)
		}
		return entities.MeetingSummary{}, errors.ErrStorageFailed("read summary", err)
	}
	s, _, err := ParseStrict(string(data))
	if err != nil {
		return entities.MeetingSummary{}, errors.ErrInvalidArgument(fmt.Sprintf("%s is not a summary JSON file", path)).
			WithDetail("cause", err.Error())
	}
	return s, nil
}
