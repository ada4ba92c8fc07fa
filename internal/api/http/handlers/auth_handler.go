package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/service"
)

// AuthHandler issues bearer tokens.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Obtain POST /api/token.
func (h *AuthHandler) Obtain(c *fiber.Ctx) error {
	var req dto.TokenObtainRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	pair, err := h.service.ObtainPair(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Refresh POST /api/token/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.TokenRefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	pair, err := h.service.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Access: pair.Access})
}
