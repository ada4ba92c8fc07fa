package dto

import (
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
)

// ComplaintRequest is the submission and update payload.
type ComplaintRequest struct {
	TicketID           *string `json:"ticket_id"`
	RoomNumber         *string `json:"room_number"`
	BedNumber          *string `json:"bed_number"`
	Block              *string `json:"block"`
	Ward               *string `json:"ward"`
	IssueType          *string `json:"issue_type"`
	AssignedDepartment *string `json:"assigned_department"`
	Priority           *string `json:"priority"`
	Status             *string `json:"status"`
	Description        *string `json:"description"`
	Remarks            *string `json:"remarks"`
}

// ComplaintResponse representation.
type ComplaintResponse struct {
	TicketID           string                   `json:"ticket_id"`
	RoomNumber         string                   `json:"room_number"`
	BedNumber          string                   `json:"bed_number"`
	Block              string                   `json:"block"`
	Ward               string                   `json:"ward"`
	IssueType          string                   `json:"issue_type"`
	AssignedDepartment string                   `json:"assigned_department"`
	Priority           domain.ComplaintPriority `json:"priority"`
	Status             domain.ComplaintStatus   `json:"status"`
	Description        string                   `json:"description"`
	SubmittedAt        time.Time                `json:"submitted_at"`
	SubmittedBy        string                   `json:"submitted_by"`
	ResolvedAt         *time.Time               `json:"resolved_at"`
	ResolvedBy         *string                  `json:"resolved_by"`
	Remarks            string                   `json:"remarks"`
}

// NewComplaintResponse maps a complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		TicketID:           c.TicketID,
		RoomNumber:         c.RoomNumber,
		BedNumber:          c.BedNumber,
		Block:              c.Block,
		Ward:               c.Ward,
		IssueType:          c.IssueType,
		AssignedDepartment: c.AssignedDepartment,
		Priority:           c.Priority,
		Status:             c.Status,
		Description:        c.Description,
		SubmittedAt:        c.SubmittedAt,
		SubmittedBy:        c.SubmittedBy,
		ResolvedAt:         c.ResolvedAt,
		ResolvedBy:         c.ResolvedBy,
		Remarks:            c.Remarks,
	}
}

// NewComplaintList maps a slice of complaints.
func NewComplaintList(items []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(items))
	for i := range items {
		out = append(out, NewComplaintResponse(&items[i]))
	}
	return out
}
