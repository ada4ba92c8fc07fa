package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	"github.com/spec-kit/facility-complaints/internal/service"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// RoomsHandler serves the room registry.
type RoomsHandler struct {
	service   *service.RoomService
	paginator Paginator
}

// NewRoomsHandler constructs handler.
func NewRoomsHandler(roomService *service.RoomService, paginator Paginator) *RoomsHandler {
	return &RoomsHandler{service: roomService, paginator: paginator}
}

// List GET /rooms.
func (h *RoomsHandler) List(c *fiber.Ctx) error {
	limit, offset, err := h.paginator.Parse(c)
	if err != nil {
		return err
	}
	status, err := choiceQuery[domain.RoomStatus](c, "status")
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), repository.RoomFilter{
		Status:     status,
		Ward:       optionalQuery(c, "ward"),
		Speciality: optionalQuery(c, "speciality"),
		RoomType:   optionalQuery(c, "room_type"),
		SearchTerm: optionalQuery(c, "search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(newPageResponse(c, h.paginator, page, roomList))
}

// Create POST /rooms.
func (h *RoomsHandler) Create(c *fiber.Ctx) error {
	var req dto.RoomRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	room, err := h.service.Create(c.UserContext(), roomInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRoomResponse(room))
}

// Get GET /rooms/:id.
func (h *RoomsHandler) Get(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}
	room, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoomResponse(room))
}

// Update PUT /rooms/:id.
func (h *RoomsHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// Patch PATCH /rooms/:id.
func (h *RoomsHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *RoomsHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}
	var req dto.RoomRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	room, err := h.service.Update(c.UserContext(), id, roomInput(req), partial)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoomResponse(room))
}

// UpdateStatus POST /rooms/:id/update_status.
func (h *RoomsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	room, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRoomResponse(room))
}

// Delete DELETE /rooms/:id.
func (h *RoomsHandler) Delete(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func roomID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFound("room", map[string]any{"id": raw})
	}
	return id, nil
}

func roomInput(req dto.RoomRequest) service.RoomInput {
	return service.RoomInput{
		RoomNo:     req.RoomNo,
		BedNo:      req.BedNo,
		Block:      req.Block,
		Ward:       req.Ward,
		Speciality: req.Speciality,
		RoomType:   req.RoomType,
		Status:     req.Status,
	}
}

func roomList(rooms []domain.Room) []dto.RoomResponse {
	out := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, dto.NewRoomResponse(&rooms[i]))
	}
	return out
}

func invalidPayload() error {
	return apperrors.NewValidationError("invalid payload", nil)
}
