package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// UsersHandler layers the self-service profile endpoints over the generic
// user CRUD handler.
type UsersHandler struct {
	*Resource[domain.User]
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{
		Resource: NewResource[domain.User](users, "User", "Users"),
		users:    users,
	}
}

// GetProfile handles GET /api/user/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Missing token")
	}

	user, err := h.users.GetProfile(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Profile fetched successfully", user))
}

// UpdateProfile handles PUT /api/user/profile. The target is always the
// authenticated caller regardless of any id in the request.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Missing token")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.users.UpdateProfile(c.UserContext(), identity, req.Email, req.FullName)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Profile updated successfully", user))
}

// ChangePassword handles PUT /api/user/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Missing token")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.users.ChangePassword(c.UserContext(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.OK("Password changed successfully", fiber.Map{}))
}
