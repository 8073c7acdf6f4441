package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/repository"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// Resource is the one generic CRUD handler, parameterized by an entity
// service and the entity names used in response messages. It adapts the
// transport boundary and nothing else: failures pass straight through to the
// error middleware.
type Resource[T any] struct {
	svc      service.CRUD[T]
	singular string
	plural   string
}

// NewResource binds a handler to an entity service.
func NewResource[T any](svc service.CRUD[T], singular, plural string) *Resource[T] {
	return &Resource[T]{svc: svc, singular: singular, plural: plural}
}

// List handles GET /api/{entity}. Query parameters become an equality filter.
func (h *Resource[T]) List(c *fiber.Ctx) error {
	filter := repository.Query{}
	for key, value := range c.Queries() {
		filter[key] = value
	}

	data, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(h.plural+" fetched successfully", data))
}

// GetByID handles GET /api/{entity}/:id.
func (h *Resource[T]) GetByID(c *fiber.Ctx) error {
	data, err := h.svc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(h.singular+" fetched successfully", data))
}

// Create handles POST /api/{entity}.
func (h *Resource[T]) Create(c *fiber.Ctx) error {
	var record T
	if err := c.BodyParser(&record); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	data, err := h.svc.Create(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(h.singular+" created successfully", data))
}

// Update handles PUT /api/{entity}/:id.
func (h *Resource[T]) Update(c *fiber.Ctx) error {
	patch := repository.Patch{}
	if err := c.BodyParser(&patch); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	data, err := h.svc.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(h.singular+" updated successfully", data))
}

// Delete handles DELETE /api/{entity}/:id.
func (h *Resource[T]) Delete(c *fiber.Ctx) error {
	deleted, err := h.svc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(h.singular+" deleted successfully", fiber.Map{"deletedCount": deleted}))
}
