package entities

// ActionItem is a task assigned during the meeting
type ActionItem struct {
	Description string  `json:"description" validate:"required" jsonschema:"description=What has to be done"`
	Owner       *string `json:"owner" jsonschema:"description=Person responsible or null"`
	DueDate     *string `json:"due_date" jsonschema:"description=Deadline as mentioned in the meeting or null"`
}

// MeetingSummary is the structured summary extracted from a transcript
type MeetingSummary struct {
	Title       *string      `json:"title" jsonschema:"description=Short meeting title or null"`
	Summary     string       `json:"summary" validate:"required" jsonschema:"description=Executive summary in a few paragraphs"`
	KeyPoints   []string     `json:"key_points" jsonschema:"description=Main topics discussed"`
	Decisions   []string     `json:"decisions" jsonschema:"description=Decisions that were made"`
	ActionItems []ActionItem `json:"action_items" validate:"dive" jsonschema:"description=Tasks with owner and due date when known"`
	Insights    []string     `json:"insights" jsonschema:"description=Risks and observations and suggestions"`
}

// Normalize replaces absent lists with empty ones so that consumers never
// have to distinguish nil from empty.
func (s *MeetingSummary) Normalize() {
	if s.KeyPoints == nil {
		s.KeyPoints = make([]string, 0)
	}
	if s.Decisions == nil {
		s.Decisions = make([]string, 0)
	}
	if s.ActionItems == nil {
		s.ActionItems = make([]ActionItem, 0)
	}
	if s.Insights == nil {
		s.Insights = make([]string, 0)
	}
}

// DisplayTitle returns the title or a generic placeholder
func (s MeetingSummary) DisplayTitle() string {
	if s.Title == nil || *s.Title == "" {
		return "Meeting Summary"
	}
	return *s.Title
}
