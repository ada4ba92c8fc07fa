package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// RequireStaff rejects anonymous callers with 401 and non-staff callers with 403.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication credentials were not provided")
		}
		if !principal.IsStaff() {
			return apperrors.NewForbidden("staff privileges required")
		}
		return c.Next()
	}
}
