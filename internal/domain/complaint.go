package domain

import "time"

// AnonymousSubmitter is recorded when a complaint is filed without an authenticated caller.
const AnonymousSubmitter = "Anonymous"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// ComplaintStatuses lists every valid status in declaration order.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusOpen,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// Valid reports whether s is a member of the status enumeration.
func (s ComplaintStatus) Valid() bool {
	for _, candidate := range ComplaintStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// ParseComplaintStatus converts raw input into a ComplaintStatus.
func ParseComplaintStatus(raw string) (ComplaintStatus, bool) {
	s := ComplaintStatus(raw)
	return s, s.Valid()
}

// ComplaintPriority enumerates complaint urgency.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
)

// ComplaintPriorities lists every valid priority in declaration order.
var ComplaintPriorities = []ComplaintPriority{
	ComplaintPriorityLow,
	ComplaintPriorityMedium,
	ComplaintPriorityHigh,
}

// Valid reports whether p is a member of the priority enumeration.
func (p ComplaintPriority) Valid() bool {
	for _, candidate := range ComplaintPriorities {
		if p == candidate {
			return true
		}
	}
	return false
}

// ParseComplaintPriority converts raw input into a ComplaintPriority.
func ParseComplaintPriority(raw string) (ComplaintPriority, bool) {
	p := ComplaintPriority(raw)
	return p, p.Valid()
}

// Complaint is a ticket filed against a room or bed.
type Complaint struct {
	TicketID           string
	RoomNumber         string
	BedNumber          string
	Block              string
	Ward               string
	IssueType          string
	AssignedDepartment string
	Priority           ComplaintPriority
	Status             ComplaintStatus
	Description        string
	SubmittedAt        time.Time
	SubmittedBy        string
	ResolvedAt         *time.Time
	ResolvedBy         *string
	Remarks            string
}

// IsResolved reports whether the complaint counts towards turnaround statistics.
func (c *Complaint) IsResolved() bool {
	return c.Status == ComplaintStatusResolved && c.ResolvedAt != nil
}

// TurnaroundTime returns resolved_at - submitted_at for resolved complaints.
func (c *Complaint) TurnaroundTime() (time.Duration, bool) {
	if !c.IsResolved() {
		return 0, false
	}
	return c.ResolvedAt.Sub(c.SubmittedAt), true
}

// TransitionTo moves the complaint to status and records remarks. Entering resolved stamps
// now and caller as the resolution, even when the complaint was already resolved; any other
// status clears the resolution so that resolved and ResolvedAt stay in step.
func (c *Complaint) TransitionTo(status ComplaintStatus, remarks string, caller *string, now time.Time) {
	c.Status = status
	c.Remarks = remarks
	if status == ComplaintStatusResolved {
		resolvedAt := now
		c.ResolvedAt = &resolvedAt
		c.ResolvedBy = caller
		return
	}
	c.ResolvedAt = nil
	c.ResolvedBy = nil
}
