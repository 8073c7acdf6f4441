package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// RequireAdmin ensures the authenticated caller holds a privileged role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Missing token")
		}
		if !identity.IsAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
