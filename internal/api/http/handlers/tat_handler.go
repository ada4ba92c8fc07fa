package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/export"
	"github.com/spec-kit/facility-complaints/internal/report"
	"github.com/spec-kit/facility-complaints/internal/service"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TATHandler serves turnaround reporting under /TATView.
type TATHandler struct {
	reports   *service.ReportService
	paginator Paginator
	logger    *zap.Logger
	now       func() time.Time
}

// NewTATHandler constructs handler. A nil now uses time.Now.
func NewTATHandler(reports *service.ReportService, paginator Paginator, logger *zap.Logger, now func() time.Time) *TATHandler {
	if now == nil {
		now = time.Now
	}
	return &TATHandler{reports: reports, paginator: paginator, logger: logger, now: now}
}

// List GET /TATView. Complaints with their per-ticket turnaround, filterable by ticket_id,
// priority, status, submitted_at and resolved_at.
func (h *TATHandler) List(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	filter, err := reportFilter(c, h.reports)
	if err != nil {
		return err
	}
	filter.TicketID = optionalQuery(c, "ticket_id")
	if filter.ResolvedOn, err = dateQuery(c, "resolved_at"); err != nil {
		return err
	}
	filter.Limit, filter.Offset = limit, offset
	page, err := h.reports.TicketTurnarounds(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(newPageResponse(c, h.paginator, page, dto.NewTicketTATs))
}

// AllDepartmentTATs GET /TATView/all_department_TATS.
func (h *TATHandler) AllDepartmentTATs(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	rep, err := h.reports.TurnaroundReport(c.UserContext(), rawTATQuery(c), limit, offset)
	if err != nil {
		return err
	}
	next, previous := h.paginator.Links(c, rep.Tickets.Total, limit, offset)
	return c.JSON(dto.TATReportResponse{
		TotalTickets:   rep.TotalTickets,
		AverageTAT:     rep.AverageTATText(),
		FiltersApplied: rep.FiltersApplied,
		Count:          rep.Tickets.Total,
		Next:           next,
		Previous:       previous,
		Results:        dto.NewTicketTATs(rep.Tickets.Items),
	})
}

// Export GET /TATView/all_department_TATS/export. The whole filtered set as an xlsx workbook.
func (h *TATHandler) Export(c *fiber.Ctx) error {
	rep, err := h.reports.TurnaroundReport(c.UserContext(), rawTATQuery(c), 0, 0)
	if err != nil {
		return err
	}
	buf, err := export.WriteTATWorkbook(export.TATWorkbook{
		TotalTickets:   rep.TotalTickets,
		AverageTAT:     rep.AverageTATText(),
		FiltersApplied: rep.FiltersApplied,
		Tickets:        rep.Tickets.Items,
		Location:       h.reports.Location(),
	})
	if err != nil {
		h.logger.Error("tat export failed", zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	c.Attachment(export.FileName(h.now()))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

func rawTATQuery(c *fiber.Ctx) report.RawTATQuery {
	return report.RawTATQuery{
		Priority:  c.Query("priority"),
		Date:      c.Query("date"),
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
	}
}
