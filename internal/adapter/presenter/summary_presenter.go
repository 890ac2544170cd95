package presenter

import (
	"strings"

	summaryDTO "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
)

// ToSummarizeResponse converts a summary result to its API response
func ToSummarizeResponse(res *summary.Result) *summaryDTO.SummarizeResponse {
	if res == nil {
		return nil
	}
	return &summaryDTO.SummarizeResponse{
		Summary:  res.Summary,
		Markdown: SummaryMarkdown(res.Summary),
		Outcome:  string(res.Outcome),
		Degraded: res.Degraded(),
		Cached:   res.Cached,
		Warnings: res.Warnings,
	}
}

// SummaryMarkdown renders meeting minutes as a Markdown document. Empty
// sections are kept so that readers see that nothing was found.
func SummaryMarkdown(s entities.MeetingSummary) string {
	var b strings.Builder
	b.WriteString("# " + s.DisplayTitle() + "\n\n")
	b.WriteString("## Summary\n\n")
	b.WriteString(strings.TrimSpace(s.Summary) + "\n")

	bullets(&b, "Key Points", s.KeyPoints)
	bullets(&b, "Decisions", s.Decisions)

	items := make([]string, 0, len(s.ActionItems))
	for _, item := range s.ActionItems {
		line := item.Description
		var meta []string
		if item.Owner != nil && *item.Owner != "" {
			meta = append(meta, "owner: "+*item.Owner)
		}
		if item.DueDate != nil && *item.DueDate != "" {
			meta = append(meta, "due: "+*item.DueDate)
		}
		if len(meta) > 0 {
			line += " _(" + strings.Join(meta, ", ") + ")_"
		}
		items = append(items, "[ ] "+line)
	}
	bullets(&b, "Action Items", items)
	bullets(&b, "Insights", s.Insights)

	return b.String()
}

func bullets(b *strings.Builder, title string, lines []string) {
	b.WriteString("\n## " + title + "\n\n")
	if len(lines) == 0 {
		b.WriteString("_None._\n")
		return
	}
	for _, l := range lines {
		b.WriteString("- " + l + "\n")
	}
}
