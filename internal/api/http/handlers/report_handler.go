package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/report"
	"github.com/spec-kit/facility-complaints/internal/repository"
	"github.com/spec-kit/facility-complaints/internal/service"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// ReportHandler serves the dashboard statistics under /report.
type ReportHandler struct {
	reports    *service.ReportService
	complaints *service.ComplaintService
	paginator  Paginator
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService, complaints *service.ComplaintService, paginator Paginator) *ReportHandler {
	return &ReportHandler{reports: reports, complaints: complaints, paginator: paginator}
}

// List GET /report. Complaints filtered by department, priority, status and submission date.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	filter, err := reportFilter(c, h.reports)
	if err != nil {
		return err
	}
	filter.Department = optionalQuery(c, "assigned_department")
	filter.Limit, filter.Offset = limit, offset
	page, err := h.complaints.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(newPageResponse(c, h.paginator, page, dto.NewComplaintList))
}

// DepartmentPriorityStats GET /report/department_priority_stats.
func (h *ReportHandler) DepartmentPriorityStats(c *fiber.Ctx) error {
	stats, err := h.reports.DepartmentPriorityStats(c.UserContext(), c.Query("department"), c.Query("priority"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DepartmentPriorityStatsResponse{
		Department:      stats.Department,
		Priority:        stats.Priority,
		TotalTickets:    stats.Total,
		OpenTickets:     stats.Open,
		ResolvedTickets: stats.Resolved,
	})
}

// AllDepartmentStats GET /report/all_department_stats.
func (h *ReportHandler) AllDepartmentStats(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	stats, err := h.reports.AllDepartmentStats(c.UserContext(), report.RawStatsQuery{
		Priority:    c.Query("priority"),
		Department:  c.Query("department"),
		Status:      c.Query("status"),
		SubmittedAt: c.Query("submitted_at"),
	}, limit, offset)
	if err != nil {
		return err
	}
	if stats.Empty {
		return c.JSON(dto.NoDataResponse{Message: service.NoDataMessage, FiltersApplied: stats.FiltersApplied})
	}
	return c.JSON(newPageResponse(c, h.paginator, stats.Groups, dto.NewDepartmentGroups))
}

// reportFilter reads the priority, status and submitted_at (YYYY-MM-DD) filters shared by
// the report and turnaround listings.
func reportFilter(c *fiber.Ctx, reports *service.ReportService) (repository.ComplaintFilter, error) {
	status, err := choiceQuery[domain.ComplaintStatus](c, "status")
	if err != nil {
		return repository.ComplaintFilter{}, err
	}
	priority, err := choiceQuery[domain.ComplaintPriority](c, "priority")
	if err != nil {
		return repository.ComplaintFilter{}, err
	}
	filter := repository.ComplaintFilter{
		Status:   status,
		Priority: priority,
		Location: reports.Location(),
	}
	if filter.SubmittedOn, err = dateQuery(c, "submitted_at"); err != nil {
		return repository.ComplaintFilter{}, err
	}
	return filter, nil
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *fiber.Ctx, key string) (*report.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := report.ParseDate(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid input", map[string]any{
			"fields": map[string]any{key: "Enter a valid date in YYYY-MM-DD format."},
		})
	}
	return &d, nil
}
