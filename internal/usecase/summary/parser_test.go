package summary

import (
	stdErrors "errors"
	"reflect"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

const validSummary = `{
  "title": "Sprint planning",
  "summary": "The team planned the next sprint.",
  "key_points": ["Scope agreed"],
  "decisions": ["Release on Friday"],
  "action_items": [{"description": "Prepare release notes", "owner": "Ana", "due_date": null}],
  "insights": ["QA capacity is tight"]
}`

func TestParseStrict_ValidObject(t *testing.T) {
	s, warnings, err := ParseStrict(validSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if s.DisplayTitle() != "Sprint planning" || s.Summary != "The team planned the next sprint." {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if len(s.ActionItems) != 1 || *s.ActionItems[0].Owner != "Ana" || s.ActionItems[0].DueDate != nil {
		t.Fatalf("unexpected action items: %+v", s.ActionItems)
	}
}

func TestParseStrict_AbsentListsBecomeEmpty(t *testing.T) {
	s, _, err := ParseStrict(`{"summary": "Short meeting."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != nil {
		t.Fatalf("title should stay nil, got %q", *s.Title)
	}
	if s.KeyPoints == nil || s.Decisions == nil || s.ActionItems == nil || s.Insights == nil {
		t.Fatalf("lists must be empty, not nil: %+v", s)
	}
}

func TestParseStrict_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing summary", `{"title": "x"}`},
		{"blank summary", `{"summary": "   "}`},
		{"prose around object", "Here it is: " + validSummary},
		{"trailing data", validSummary + " thanks"},
		{"not json", "I could not produce a summary."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseStrict(tt.content); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParseStrict_MissingSummaryWrapsSentinel(t *testing.T) {
	_, _, err := ParseStrict(`{"key_points": []}`)
	if !stdErrors.Is(err, entities.ErrEmptySummary) {
		t.Fatalf("expected ErrEmptySummary, got %v", err)
	}
}

func TestParseStrict_CoercesOffShapeFields(t *testing.T) {
	content := `{
		"summary": ["First part.", "Second part."],
		"key_points": [{"point": "Hiring"}, "Budget", ""],
		"decisions": "Move the offsite",
		"action_items": [
			"Send the report",
			{"task": "Book a room", "responsible": "Bruno", "deadline": "Monday"},
			{"owner": "nobody"}
		]
	}`
	s, warnings, err := ParseStrict(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Summary != "First part.\n\nSecond part." {
		t.Fatalf("summary = %q", s.Summary)
	}
	if !reflect.DeepEqual(s.KeyPoints, []string{"Hiring", "Budget"}) {
		t.Fatalf("key points = %v", s.KeyPoints)
	}
	if !reflect.DeepEqual(s.Decisions, []string{"Move the offsite"}) {
		t.Fatalf("decisions = %v", s.Decisions)
	}
	if len(s.ActionItems) != 2 {
		t.Fatalf("expected 2 action items, got %+v", s.ActionItems)
	}
	second := s.ActionItems[1]
	if second.Description != "Book a room" || *second.Owner != "Bruno" || *second.DueDate != "Monday" {
		t.Fatalf("unexpected action item: %+v", second)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "dropped 1") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestParseBestEffort(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"prose wrapped", "Sure! Here is the summary:\n" + validSummary + "\nLet me know if you need more."},
		{"json fence", "```json\n" + validSummary + "\n```"},
		{"bare fence", "```\n" + validSummary + "\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, err := ParseBestEffort(tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Summary != "The team planned the next sprint." {
				t.Fatalf("summary = %q", s.Summary)
			}
		})
	}
}

func TestParseBestEffort_ClosesTruncatedObject(t *testing.T) {
	content := `{"summary": "Budget approved", "key_points": ["Costs", "Hiring`
	s, warnings, err := ParseBestEffort(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s.KeyPoints, []string{"Costs", "Hiring"}) {
		t.Fatalf("key points = %v", s.KeyPoints)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a truncation warning")
	}
}

func TestParseBestEffort_NoObject(t *testing.T) {
	_, _, err := ParseBestEffort("no braces at all")
	if !stdErrors.Is(err, entities.ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v", err)
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := ExtractJSONObject(`noise {"a": {"b": 1}} more noise`)
	if !ok || got != `{"a": {"b": 1}}` {
		t.Fatalf("got %q, %v", got, ok)
	}
	if _, ok := ExtractJSONObject("} nothing {"); ok {
		t.Fatal("reversed braces must not match")
	}
}

func TestCloseTruncated(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a": 1}`, "", false},
		{`{"a": [1, 2,`, `{"a": [1, 2]}`, true},
		{`{"a": "x`, `{"a": "x"}`, true},
		{`{"a":`, `{"a":null}`, true},
	}
	for _, tt := range tests {
		got, ok := closeTruncated(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("closeTruncated(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
