package followup

import (
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/summary"
)

var systemPrompt = `You write professional follow-up e-mails after business meetings.
Answer with a single JSON object matching this schema:

` + summary.SchemaJSON(&entities.FollowUpEmail{}) + `

Guidelines:
- Keep the subject under 60 characters.
- Be concise and direct, focused on actions and results.
- Format action items with owner and deadline when they are known.
- Write in the language of the meeting minutes.`

func userPrompt(sum entities.MeetingSummary, meta Meta) string {
	var b strings.Builder
	b.WriteString("Meeting minutes:\n\n")
	b.WriteString("TITLE: " + titleOf(sum) + "\n\n")
	b.WriteString("SUMMARY: " + sum.Summary + "\n")

	section(&b, "KEY POINTS", sum.KeyPoints)
	section(&b, "DECISIONS", sum.Decisions)
	section(&b, "ACTION ITEMS", FormatActionItems(sum.ActionItems))
	section(&b, "INSIGHTS", sum.Insights)

	var ctx []string
	if meta.MeetingDate != "" {
		ctx = append(ctx, "Meeting date: "+meta.MeetingDate)
	}
	if meta.SenderName != "" {
		ctx = append(ctx, "Sender: "+meta.SenderName)
	}
	if meta.CompanyName != "" {
		ctx = append(ctx, "Company: "+meta.CompanyName)
	}
	if c := strings.TrimSpace(meta.Context); c != "" {
		ctx = append(ctx, "Additional context: "+c)
	}
	if len(ctx) > 0 {
		b.WriteString("\nCONTEXT:\n")
		b.WriteString(strings.Join(ctx, "\n"))
		b.WriteString("\n")
	}

	b.WriteString("\nWrite the follow-up e-mail.")
	return b.String()
}

func section(b *strings.Builder, name string, lines []string) {
	b.WriteString("\n" + name + ":\n")
	for _, l := range lines {
		b.WriteString("- " + l + "\n")
	}
}

// Text renders the e-mail as plain text
func Text(e entities.FollowUpEmail) string {
	var b strings.Builder
	b.WriteString("Subject: " + e.Subject + "\n")
	if e.MeetingDate != "" {
		b.WriteString("Meeting date: " + e.MeetingDate + "\n")
	}
	b.WriteString("\n" + e.Greeting + "\n\n")
	b.WriteString(e.Summary + "\n")
	if len(e.KeyDecisions) > 0 {
		b.WriteString("\nKey decisions:\n")
		for _, d := range e.KeyDecisions {
			b.WriteString("  - " + d + "\n")
		}
	}
	if len(e.ActionItems) > 0 {
		b.WriteString("\nAction items:\n")
		for _, a := range e.ActionItems {
			b.WriteString("  - " + a + "\n")
		}
	}
	if e.NextSteps != "" {
		b.WriteString("\nNext steps: " + e.NextSteps + "\n")
	}
	b.WriteString("\n" + e.Closing + "\n")
	return b.String()
}
