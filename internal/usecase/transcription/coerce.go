package transcription

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// toMapping turns an upstream body into a generic mapping. Strategies are
// tried in order: a JSON object, a JSON string that itself holds a JSON
// object, and finally an empty mapping. It never fails.
func toMapping(body []byte) map[string]interface{} {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]interface{}{}
	}

	if m, ok := decodeObject(trimmed); ok {
		return m
	}

	var inner string
	if err := json.Unmarshal(trimmed, &inner); err == nil {
		if m, ok := decodeObject([]byte(strings.TrimSpace(inner))); ok {
			return m
		}
	}

	return map[string]interface{}{}
}

func decodeObject(b []byte) (map[string]interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// textOf reads the "text" field. Typed decoding is tried first; when the
// field is not a string the generic mapping is used and the value is
// rendered as text.
func textOf(body []byte, m map[string]interface{}) (string, bool) {
	var direct struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &direct); err == nil && direct.Text != nil {
		return *direct.Text, true
	}

	v, ok := m["text"]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// coerceSeconds converts a loosely typed time value into seconds.
// Blank strings and the literals none, null and nan mean "unknown". A
// string that does not parse is also unknown and yields a warning. Values
// of any other type are an error.
func coerceSeconds(v interface{}) (*float64, string, error) {
	switch x := v.(type) {
	case nil:
		return nil, "", nil
	case float64:
		return finite(x, fmt.Sprint(x))
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return nil, fmt.Sprintf("could not parse %q as seconds", x.String()), nil
		}
		return finite(f, x.String())
	case string:
		s := strings.TrimSpace(x)
		switch strings.ToLower(s) {
		case "", "none", "null", "nan":
			return nil, "", nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Sprintf("could not parse %q as seconds", x), nil
		}
		return finite(f, x)
	case int:
		f := float64(x)
		return &f, "", nil
	case int64:
		f := float64(x)
		return &f, "", nil
	default:
		return nil, "", fmt.Errorf("unsupported time value of type %T", v)
	}
}

func finite(f float64, raw string) (*float64, string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Sprintf("ignoring non-finite time %q", raw), nil
	}
	return &f, "", nil
}
