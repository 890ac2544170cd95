package presenter

import (
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

func TestSummaryMarkdown(t *testing.T) {
	s := entities.MeetingSummary{
		Title:     ptr("Weekly sync"),
		Summary:   "We reviewed the roadmap.",
		KeyPoints: []string{"Roadmap", "Hiring"},
		Decisions: []string{},
		ActionItems: []entities.ActionItem{
			{Description: "Share slides", Owner: ptr("Ana"), DueDate: ptr("Friday")},
			{Description: "Book room"},
		},
		Insights: []string{"Team is at capacity"},
	}

	md := SummaryMarkdown(s)
	for _, want := range []string{
		"# Weekly sync\n",
		"## Summary\n\nWe reviewed the roadmap.\n",
		"- Roadmap\n- Hiring\n",
		"## Decisions\n\n_None._\n",
		"- [ ] Share slides _(owner: Ana, due: Friday)_\n",
		"- [ ] Book room\n",
		"## Insights\n\n- Team is at capacity\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}

func TestSummaryMarkdown_DefaultTitle(t *testing.T) {
	md := SummaryMarkdown(entities.MeetingSummary{Summary: "x"})
	if !strings.HasPrefix(md, "# Meeting Summary\n") {
		t.Fatalf("unexpected heading:\n%s", md)
	}
}

func TestTranscriptText(t *testing.T) {
	tr := entities.Transcript{
		Text:     "hi bye",
		Language: "en",
		Segments: []entities.TranscriptSegment{
			{Start: ptr(0.0), End: ptr(2.5), Text: "hi", Speaker: ptr("A")},
			{Start: ptr(3725.0), Text: " bye "},
			{Start: ptr(10.0), End: ptr(4.0), Text: "odd"},
		},
	}
	got := TranscriptText(tr)
	want := "[00:00 - 00:02] A: hi\n[01:02:05 - 01:02:05] bye\n[00:10 - 00:10] odd\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}

	plain := entities.Transcript{Text: "no timing", Language: "en"}
	if TranscriptText(plain) != "no timing" {
		t.Fatal("plain transcripts render their text")
	}
}

func TestTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:     "00:00",
		59.9:  "00:59",
		61:    "01:01",
		3600:  "01:00:00",
		-3:    "00:00",
	}
	for in, want := range tests {
		if got := Timestamp(in); got != want {
			t.Errorf("Timestamp(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("á", previewChars+5)
	if got := preview(long); got != strings.Repeat("á", previewChars)+"..." {
		t.Fatalf("preview has %d runes", len([]rune(got)))
	}
	if preview("short") != "short" {
		t.Fatal("short text must be kept")
	}
}
