package events

import (
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintDeleted       EventType = "complaint_deleted"
)

// Actor identifies who triggered an event. A nil Username is an anonymous caller.
type Actor struct {
	Username *string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	AssignedDepartment string                   `json:"assigned_department"`
	Priority           domain.ComplaintPriority `json:"priority"`
	IssueType          string                   `json:"issue_type"`
	RoomNumber         string                   `json:"room_number"`
	Ward               string                   `json:"ward"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
	Remarks   string                 `json:"remarks,omitempty"`
}
