package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/auth"
	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	"github.com/spec-kit/facility-complaints/internal/service"
)

// ComplaintsHandler serves complaint tickets.
type ComplaintsHandler struct {
	service   *service.ComplaintService
	paginator Paginator
	now       func() time.Time
}

// NewComplaintsHandler constructs handler. A nil now uses time.Now.
func NewComplaintsHandler(complaintService *service.ComplaintService, paginator Paginator, now func() time.Time) *ComplaintsHandler {
	if now == nil {
		now = time.Now
	}
	return &ComplaintsHandler{service: complaintService, paginator: paginator, now: now}
}

// List GET /complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	status, err := choiceQuery[domain.ComplaintStatus](c, "status")
	if err != nil {
		return err
	}
	priority, err := choiceQuery[domain.ComplaintPriority](c, "priority")
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), repository.ComplaintFilter{
		Status:     status,
		Priority:   priority,
		IssueType:  optionalQuery(c, "issue_type"),
		Ward:       optionalQuery(c, "ward"),
		Block:      optionalQuery(c, "block"),
		SearchTerm: optionalQuery(c, "search"),
		Ordering:   repository.ParseComplaintOrdering(c.Query("ordering")),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(newPageResponse(c, h.paginator, page, dto.NewComplaintList))
}

// Create POST /complaints. Anonymous callers are allowed.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	var req dto.ComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	complaint, err := h.service.Create(c.UserContext(), complaintInput(req), auth.CallerName(c), h.now())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewComplaintResponse(complaint))
}

// Get GET /complaints/:ticket_id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.service.Get(c.UserContext(), c.Params("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// Update PUT /complaints/:ticket_id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// Patch PATCH /complaints/:ticket_id.
func (h *ComplaintsHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *ComplaintsHandler) update(c *fiber.Ctx, partial bool) error {
	var req dto.ComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	complaint, err := h.service.Update(c.UserContext(), c.Params("ticket_id"), complaintInput(req), partial)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// UpdateStatus POST /complaints/:ticket_id/update_status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	complaint, err := h.service.UpdateStatus(c.UserContext(), c.Params("ticket_id"), req.Status, req.Remarks, auth.CallerName(c), h.now())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintResponse(complaint))
}

// ByStatus GET /complaints/by_status?status=.
func (h *ComplaintsHandler) ByStatus(c *fiber.Ctx) error {
	items, err := h.service.ByStatus(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintList(items))
}

// ByPriority GET /complaints/by_priority?priority=.
func (h *ComplaintsHandler) ByPriority(c *fiber.Ctx) error {
	items, err := h.service.ByPriority(c.UserContext(), c.Query("priority"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewComplaintList(items))
}

// Delete DELETE /complaints/:ticket_id.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("ticket_id"), auth.CallerName(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func complaintInput(req dto.ComplaintRequest) service.ComplaintInput {
	return service.ComplaintInput{
		TicketID:           req.TicketID,
		RoomNumber:         req.RoomNumber,
		BedNumber:          req.BedNumber,
		Block:              req.Block,
		Ward:               req.Ward,
		IssueType:          req.IssueType,
		AssignedDepartment: req.AssignedDepartment,
		Priority:           req.Priority,
		Status:             req.Status,
		Description:        req.Description,
		Remarks:            req.Remarks,
	}
}
