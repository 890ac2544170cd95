package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"
)

var shapeValidator = pkgvalidator.New()

// rawSummary accepts any JSON value per field; coercion happens afterwards
// so that slightly off-shape model output is still usable.
type rawSummary struct {
	Title       json.RawMessage `json:"title"`
	Summary     json.RawMessage `json:"summary"`
	KeyPoints   json.RawMessage `json:"key_points"`
	Decisions   json.RawMessage `json:"decisions"`
	ActionItems json.RawMessage `json:"action_items"`
	Insights    json.RawMessage `json:"insights"`
}

// ParseStrict decodes content as a single JSON object and validates it
// against the MeetingSummary shape. Absent lists become empty, absent
// optional fields stay nil.
func ParseStrict(content string) (entities.MeetingSummary, []string, error) {
	var raw rawSummary
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(content)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return entities.MeetingSummary{}, nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if dec.More() {
		return entities.MeetingSummary{}, nil, fmt.Errorf("unexpected data after JSON object")
	}
	return coerceSummary(raw)
}

// ParseBestEffort looks for the largest brace-delimited region in content
// (after removing markdown fences) and parses it. If the object was cut
// off, unterminated strings and brackets are closed as a last attempt.
func ParseBestEffort(content string) (entities.MeetingSummary, []string, error) {
	s := stripFences(content)
	start := strings.Index(s, "{")
	if start < 0 {
		return entities.MeetingSummary{}, nil, entities.ErrNoJSONObject
	}

	var lastErr error
	if end := strings.LastIndex(s, "}"); end > start {
		sum, warnings, err := ParseStrict(s[start : end+1])
		if err == nil {
			return sum, warnings, nil
		}
		lastErr = err
	}

	if repaired, ok := closeTruncated(s[start:]); ok {
		sum, warnings, err := ParseStrict(repaired)
		if err == nil {
			return sum, append(warnings, "model output was truncated; closed the JSON object"), nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = entities.ErrNoJSONObject
	}
	return entities.MeetingSummary{}, nil, lastErr
}

// ExtractJSONObject returns the largest brace-delimited substring of
// content, after removing markdown fences.
func ExtractJSONObject(content string) (string, bool) {
	s := stripFences(content)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// stripFences extracts JSON content from markdown code blocks
func stripFences(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

// closeTruncated balances a JSON object whose tail is missing. It reports
// false when s is not truncated.
func closeTruncated(s string) (string, bool) {
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return "", false
			}
		}
	}
	if len(stack) == 0 && !inString {
		return "", false
	}

	var b strings.Builder
	b.WriteString(s)
	if escaped {
		b.WriteString(`\`)
	}
	if inString {
		b.WriteByte('"')
	}
	out := strings.TrimRight(b.String(), " \t\r\n")
	switch {
	case strings.HasSuffix(out, ","):
		out = strings.TrimSuffix(out, ",")
	case strings.HasSuffix(out, ":"):
		out += "null"
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}
	return out, true
}

func coerceSummary(raw rawSummary) (entities.MeetingSummary, []string, error) {
	var warnings []string

	text, err := requiredText(raw.Summary)
	if err != nil {
		return entities.MeetingSummary{}, nil, err
	}

	s := entities.MeetingSummary{
		Title:     optionalText(raw.Title),
		Summary:   text,
		KeyPoints: stringList(raw.KeyPoints, "point", "text", "description", "title"),
		Decisions: stringList(raw.Decisions, "decision", "text", "description", "title"),
		Insights:  stringList(raw.Insights, "insight", "text", "description", "title"),
	}

	items, dropped := actionItems(raw.ActionItems)
	s.ActionItems = items
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("dropped %d action item(s) without description", dropped))
	}

	s.Normalize()
	if err := shapeValidator.Validate(&s); err != nil {
		return entities.MeetingSummary{}, nil, fmt.Errorf("summary does not match the expected shape: %s", pkgvalidator.Describe(err))
	}
	return s, warnings, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func requiredText(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", fmt.Errorf("missing summary in response: %w", entities.ErrEmptySummary)
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	var text string
	switch x := v.(type) {
	case string:
		text = x
	case []interface{}:
		text = strings.Join(flatten(x), "\n\n")
	default:
		text = scalarText(v)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("blank summary in response: %w", entities.ErrEmptySummary)
	}
	return text, nil
}

func optionalText(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	s := strings.TrimSpace(scalarText(v))
	if s == "" {
		return nil
	}
	return &s
}

// stringList accepts a list of strings, a list of objects (the first
// non-empty of keys is used) or a single string.
func stringList(raw json.RawMessage, keys ...string) []string {
	if isNull(raw) {
		return []string{}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return []string{}
	}
	switch x := v.(type) {
	case []interface{}:
		return flatten(x, keys...)
	case string:
		if s := strings.TrimSpace(x); s != "" {
			return []string{s}
		}
	}
	return []string{}
}

func flatten(list []interface{}, keys ...string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		if m, ok := item.(map[string]interface{}); ok {
			s = firstText(m, keys...)
			if s == "" {
				b, _ := json.Marshal(m)
				s = string(b)
			}
		} else {
			s = scalarText(item)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func actionItems(raw json.RawMessage) ([]entities.ActionItem, int) {
	items := []entities.ActionItem{}
	if isNull(raw) {
		return items, 0
	}
	var list []interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return items, 0
	}

	dropped := 0
	for _, entry := range list {
		var item entities.ActionItem
		switch x := entry.(type) {
		case string:
			item.Description = strings.TrimSpace(x)
		case map[string]interface{}:
			item.Description = firstText(x, "description", "task", "action", "text", "title")
			item.Owner = nonEmpty(firstText(x, "owner", "responsible", "assignee"))
			item.DueDate = nonEmpty(firstText(x, "due_date", "deadline", "due"))
		}
		if item.Description == "" {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped
}

func firstText(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s := strings.TrimSpace(scalarText(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func scalarText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64, bool:
		return fmt.Sprint(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
