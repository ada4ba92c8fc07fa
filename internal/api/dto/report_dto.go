package dto

import (
	"time"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
)

// DepartmentPriorityStatsResponse is the single department/priority statistic.
type DepartmentPriorityStatsResponse struct {
	Department      string                   `json:"department"`
	Priority        domain.ComplaintPriority `json:"priority"`
	TotalTickets    int                      `json:"total_tickets"`
	OpenTickets     int                      `json:"open_tickets"`
	ResolvedTickets int                      `json:"resolved_tickets"`
}

// DepartmentGroupResponse is one (department, priority) group.
type DepartmentGroupResponse struct {
	AssignedDepartment string                   `json:"assigned_department"`
	Priority           domain.ComplaintPriority `json:"priority"`
	OpenTickets        int                      `json:"open_tickets"`
	ResolvedTickets    int                      `json:"resolved_tickets"`
	TotalTickets       int                      `json:"total_tickets"`
}

// NewDepartmentGroups maps the grouped counts.
func NewDepartmentGroups(groups []report.GroupCounts) []DepartmentGroupResponse {
	out := make([]DepartmentGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, DepartmentGroupResponse{
			AssignedDepartment: g.Department,
			Priority:           g.Priority,
			OpenTickets:        g.Open,
			ResolvedTickets:    g.Resolved,
			TotalTickets:       g.Total,
		})
	}
	return out
}

// NoDataResponse is returned by the statistics endpoint when nothing matches.
type NoDataResponse struct {
	Message        string         `json:"message"`
	FiltersApplied map[string]any `json:"filters_applied"`
}

// TicketTATResponse is one line of a turnaround listing.
type TicketTATResponse struct {
	TicketID    string                   `json:"ticket_id"`
	SubmittedAt time.Time                `json:"submitted_at"`
	ResolvedAt  *time.Time               `json:"resolved_at"`
	Priority    domain.ComplaintPriority `json:"priority"`
	Status      domain.ComplaintStatus   `json:"status"`
	TAT         string                   `json:"tat"`
}

// NewTicketTATs maps per-ticket turnarounds.
func NewTicketTATs(items []report.TicketTAT) []TicketTATResponse {
	out := make([]TicketTATResponse, 0, len(items))
	for _, t := range items {
		out = append(out, TicketTATResponse{
			TicketID:    t.TicketID,
			SubmittedAt: t.SubmittedAt,
			ResolvedAt:  t.ResolvedAt,
			Priority:    t.Priority,
			Status:      t.Status,
			TAT:         t.TAT,
		})
	}
	return out
}

// TATReportResponse is the turnaround summary with one page of tickets.
type TATReportResponse struct {
	TotalTickets   int                 `json:"total_tickets"`
	AverageTAT     string              `json:"average_tat"`
	FiltersApplied map[string]any      `json:"filters_applied"`
	Count          int                 `json:"count"`
	Next           *string             `json:"next"`
	Previous       *string             `json:"previous"`
	Results        []TicketTATResponse `json:"results"`
}
