package events

import "time"

const SectionCatalogTopic = "hr.section.catalog.v1"

const (
	SectionCreated = "section_created"
	SectionUpdated = "section_updated"
	SectionDeleted = "section_deleted"
)

// SectionEvent.Employees counts the employee records whose snapshot was
// removed; it is only set for section_deleted.
type SectionEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SectionID  string    `json:"section_id"`
	Name       string    `json:"name"`
	Employees  int64     `json:"employees,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
