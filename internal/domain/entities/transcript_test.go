package entities

import (
	"encoding/json"
	"testing"
)

func TestTranscriptSegment_DisplayTimes(t *testing.T) {
	start := 2.5
	end := 4.0

	tests := []struct {
		name      string
		seg       TranscriptSegment
		wantStart float64
		wantEnd   float64
	}{
		{"both known", TranscriptSegment{Start: &start, End: &end}, 2.5, 4.0},
		{"missing end", TranscriptSegment{Start: &start}, 2.5, 2.51},
		{"missing both", TranscriptSegment{}, 0, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.DisplayStart(); got != tt.wantStart {
				t.Errorf("DisplayStart() = %v, want %v", got, tt.wantStart)
			}
			if got := tt.seg.DisplayEnd(); got != tt.wantEnd {
				t.Errorf("DisplayEnd() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestTranscript_NormalizeEmptySegments(t *testing.T) {
	tr := Transcript{Text: "x", Language: "pt", Segments: []TranscriptSegment{}}
	tr.Normalize()

	if tr.Segments != nil {
		t.Fatalf("empty segments must become nil")
	}

	b, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"text":"x","language":"pt","segments":null,"source_path":null}` {
		t.Fatalf("unexpected JSON %s", b)
	}
}

func TestMeetingSummary_Normalize(t *testing.T) {
	s := MeetingSummary{Summary: "s"}
	s.Normalize()

	if s.KeyPoints == nil || s.Decisions == nil || s.ActionItems == nil || s.Insights == nil {
		t.Fatalf("lists must be non-nil after Normalize: %+v", s)
	}
	if s.DisplayTitle() != "Meeting Summary" {
		t.Fatalf("unexpected placeholder title %q", s.DisplayTitle())
	}
}
