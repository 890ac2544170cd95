package entities

// TranscriptSegment is a timed slice of a transcript. Start and End are
// seconds from the beginning of the audio; either may be unknown.
type TranscriptSegment struct {
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Text    string   `json:"text"`
	Speaker *string  `json:"speaker,omitempty"`
}

// DisplayStart returns the start time used for rendering, 0 when unknown.
func (s TranscriptSegment) DisplayStart() float64 {
	if s.Start == nil {
		return 0
	}
	return *s.Start
}

// DisplayEnd returns the end time used for rendering. An unknown end is
// shown as start + 0.01 so that every segment has a positive width.
func (s TranscriptSegment) DisplayEnd() float64 {
	if s.End == nil {
		return s.DisplayStart() + 0.01
	}
	return *s.End
}

// Transcript is the normalized result of a transcription, independent of
// which response format or provider produced it.
type Transcript struct {
	Text       string              `json:"text"`
	Language   string              `json:"language" validate:"required"`
	Segments   []TranscriptSegment `json:"segments"`
	SourcePath *string             `json:"source_path"`
}

// HasSegments reports whether timing information is available.
func (t Transcript) HasSegments() bool {
	return len(t.Segments) > 0
}

// Normalize enforces that "no segments" is always represented as nil,
// never as an empty list.
func (t *Transcript) Normalize() {
	if len(t.Segments) == 0 {
		t.Segments = nil
	}
}

// NewTranscript builds a transcript without timing information.
func NewTranscript(text, language string, sourcePath string) Transcript {
	t := Transcript{Text: text, Language: language}
	if sourcePath != "" {
		t.SourcePath = &sourcePath
	}
	return t
}
