package entity

type EventType string

const (
	EventInit            EventType = "init"
	EventStatus          EventType = "status"
	EventSectionComplete EventType = "section_complete"
	EventComplete        EventType = "complete"
	EventError           EventType = "error"
)

const (
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
)

// StreamEvent is one frame of a page generation stream. Only the fields of
// the given Type are populated.
type StreamEvent struct {
	Type          EventType      `json:"type"`
	TotalSections int            `json:"total_sections,omitempty"`
	SectionNames  []string       `json:"section_names,omitempty"`
	PageType      PageType       `json:"page_type,omitempty"`
	Section       string         `json:"section,omitempty"`
	Status        string         `json:"status,omitempty"`
	Data          *SectionResult `json:"data,omitempty"`
	Message       string         `json:"message,omitempty"`
}

func (e StreamEvent) IsTerminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}

func NewInitEvent(plan GenerationPlan) StreamEvent {
	return StreamEvent{
		Type:          EventInit,
		TotalSections: len(plan.Sections),
		SectionNames:  plan.SectionNames(),
		PageType:      plan.PageType,
	}
}

func NewStatusEvent(section string) StreamEvent {
	return StreamEvent{Type: EventStatus, Section: section, Status: StatusGenerating}
}

func NewSectionCompleteEvent(res SectionResult) StreamEvent {
	return StreamEvent{
		Type:    EventSectionComplete,
		Section: res.SectionName,
		Status:  StatusCompleted,
		Data:    &res,
	}
}

func NewCompleteEvent(message string) StreamEvent {
	return StreamEvent{Type: EventComplete, Message: message}
}

func NewErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Message: message}
}
