package transcription

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
)

// segmentedAdapter handles verbose_json: text, reported language and timed
// segments. A segment that cannot be parsed is kept with its text only.
type segmentedAdapter struct{}

func (segmentedAdapter) Format() string { return "verbose_json" }

func (segmentedAdapter) Adapt(raw *ai.RawTranscription, opts NormalizeOptions) (entities.Transcript, []string, error) {
	m := toMapping(raw.Body)
	if len(m) == 0 {
		return entities.Transcript{}, nil, fmt.Errorf("%w: verbose_json body is not a JSON object", entities.ErrMalformedPayload)
	}

	var warnings []string
	text, _ := textOf(raw.Body, m)
	tr := entities.Transcript{Text: text, Language: opts.Language}
	if lang, ok := m["language"].(string); ok && strings.TrimSpace(lang) != "" {
		tr.Language = strings.TrimSpace(lang)
	}

	rawSegments, present := m["segments"]
	if !present || rawSegments == nil {
		return tr, warnings, nil
	}
	list, ok := rawSegments.([]interface{})
	if !ok {
		warnings = append(warnings, fmt.Sprintf("segments field is %T, not a list; ignoring it", rawSegments))
		return tr, warnings, nil
	}

	for i, entry := range list {
		seg, segWarnings, err := parseSegment(entry)
		for _, w := range segWarnings {
			warnings = append(warnings, fmt.Sprintf("segment %d: %s", i, w))
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("segment %d kept as text only: %v", i, err))
			seg = entities.TranscriptSegment{Text: segmentText(entry)}
		}
		tr.Segments = append(tr.Segments, seg)
	}

	return tr, warnings, nil
}

func parseSegment(entry interface{}) (entities.TranscriptSegment, []string, error) {
	m, ok := entry.(map[string]interface{})
	if !ok {
		return entities.TranscriptSegment{}, nil, fmt.Errorf("segment is %T, not an object", entry)
	}

	var seg entities.TranscriptSegment
	switch t := m["text"].(type) {
	case string:
		seg.Text = t
	case nil:
	default:
		return entities.TranscriptSegment{}, nil, fmt.Errorf("text is %T, not a string", t)
	}

	var warnings []string
	start, w, err := coerceSeconds(m["start"])
	if err != nil {
		return entities.TranscriptSegment{}, nil, fmt.Errorf("start: %w", err)
	}
	if w != "" {
		warnings = append(warnings, "start "+w)
	}
	end, w, err := coerceSeconds(m["end"])
	if err != nil {
		return entities.TranscriptSegment{}, nil, fmt.Errorf("end: %w", err)
	}
	if w != "" {
		warnings = append(warnings, "end "+w)
	}
	seg.Start, seg.End = start, end

	if sp, ok := m["speaker"].(string); ok && sp != "" {
		seg.Speaker = &sp
	}
	return seg, warnings, nil
}

func segmentText(entry interface{}) string {
	switch x := entry.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]interface{}:
		if v, ok := x["text"]; ok && v != nil {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// envelopeAdapter handles json: {"text": "..."}. A body that is not JSON is
// taken as the text itself.
type envelopeAdapter struct{}

func (envelopeAdapter) Format() string { return "json" }

func (envelopeAdapter) Adapt(raw *ai.RawTranscription, opts NormalizeOptions) (entities.Transcript, []string, error) {
	m := toMapping(raw.Body)
	if text, ok := textOf(raw.Body, m); ok {
		return entities.Transcript{Text: text, Language: opts.Language}, nil, nil
	}
	if len(m) > 0 {
		return entities.Transcript{Language: opts.Language}, []string{"JSON response has no text field"}, nil
	}
	return entities.Transcript{Text: strings.TrimSpace(string(raw.Body)), Language: opts.Language},
		[]string{"response is not JSON; using it as plain text"}, nil
}

// plainTextAdapter handles text. Providers that always answer with a JSON
// envelope are unwrapped.
type plainTextAdapter struct{}

func (plainTextAdapter) Format() string { return "text" }

func (plainTextAdapter) Adapt(raw *ai.RawTranscription, opts NormalizeOptions) (entities.Transcript, []string, error) {
	if text, ok := envelopeText(raw); ok {
		return entities.Transcript{Text: text, Language: opts.Language}, nil, nil
	}
	return entities.Transcript{Text: strings.TrimSpace(string(raw.Body)), Language: opts.Language}, nil, nil
}

// subtitleAdapter handles srt and vtt. Only the plain text is kept: the
// envelope text when the provider sends one, otherwise the cue text with
// indices, timings and headers removed.
type subtitleAdapter struct {
	format string
}

func (a subtitleAdapter) Format() string { return a.format }

func (a subtitleAdapter) Adapt(raw *ai.RawTranscription, opts NormalizeOptions) (entities.Transcript, []string, error) {
	if text, ok := envelopeText(raw); ok {
		return entities.Transcript{Text: text, Language: opts.Language}, nil, nil
	}
	return entities.Transcript{Text: StripSubtitles(string(raw.Body)), Language: opts.Language}, nil, nil
}

func envelopeText(raw *ai.RawTranscription) (string, bool) {
	if !strings.Contains(strings.ToLower(raw.ContentType), "json") {
		return "", false
	}
	return textOf(raw.Body, toMapping(raw.Body))
}

var (
	cueIndexRe = regexp.MustCompile(`^\d+$`)
	markupRe   = regexp.MustCompile(`<[^>]+>`)
)

// StripSubtitles extracts the spoken text from SRT or WebVTT content.
func StripSubtitles(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var parts []string
	skipBlock := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			skipBlock = false
			continue
		case skipBlock:
			continue
		case strings.HasPrefix(line, "WEBVTT"),
			strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "STYLE"),
			strings.HasPrefix(line, "REGION"):
			skipBlock = true
			continue
		case strings.Contains(line, "-->"), cueIndexRe.MatchString(line):
			continue
		}
		if text := strings.TrimSpace(markupRe.ReplaceAllString(line, "")); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
