package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// SchemaJSON renders the JSON schema of v for embedding in prompts.
func SchemaJSON(v interface{}) string {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := r.Reflect(v)
	schema.Version = ""

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

var summarySchema = SchemaJSON(&entities.MeetingSummary{})

func systemPrompt(language string) string {
	var b strings.Builder
	b.WriteString("You are an assistant that writes structured meeting minutes.\n")
	b.WriteString("Read the transcript and answer with a single JSON object that matches this schema:\n\n")
	b.WriteString(summarySchema)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Answer with the JSON object only, without markdown or commentary.\n")
	b.WriteString("- Use null for unknown owners and due dates. Never invent them.\n")
	b.WriteString("- Use empty lists when there are no decisions, action items or insights.\n")
	if language != "" {
		fmt.Fprintf(&b, "- Write every field in the transcript language (%s).\n", language)
	}
	return b.String()
}

func userPrompt(text, extraContext string) string {
	var b strings.Builder
	if ctx := strings.TrimSpace(extraContext); ctx != "" {
		b.WriteString("Additional context about this meeting:\n")
		b.WriteString(ctx)
		b.WriteString("\n\n")
	}
	b.WriteString("Transcript:\n")
	b.WriteString(text)
	return b.String()
}
