package entities

// FollowUpEmail is a draft e-mail sent to participants after the meeting
type FollowUpEmail struct {
	Subject      string   `json:"subject" validate:"required" jsonschema:"description=E-mail subject line"`
	Greeting     string   `json:"greeting" jsonschema:"description=Opening line addressed to the participants"`
	Summary      string   `json:"summary" jsonschema:"description=Short recap of the meeting"`
	KeyDecisions []string `json:"key_decisions" jsonschema:"description=Decisions worth restating"`
	ActionItems  []string `json:"action_items" jsonschema:"description=One line per task including owner and deadline"`
	NextSteps    string   `json:"next_steps" jsonschema:"description=What happens next"`
	Closing      string   `json:"closing" jsonschema:"description=Sign-off"`
	MeetingDate  string   `json:"meeting_date" jsonschema:"description=Meeting date as given"`
}

// Normalize replaces absent lists with empty ones
func (e *FollowUpEmail) Normalize() {
	if e.KeyDecisions == nil {
		e.KeyDecisions = make([]string, 0)
	}
	if e.ActionItems == nil {
		e.ActionItems = make([]string, 0)
	}
}
