package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated = "employee_created"
	EmployeeUpdated = "employee_updated"
	EmployeeDeleted = "employee_deleted"
)

type EmployeeEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	UpdateMode string    `json:"update_mode,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
