package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/usecase"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// MaterialHandler maneja el catálogo de materiales.
type MaterialHandler struct {
	guard *Guard
	uc    *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(guard *Guard, uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{guard: guard, uc: uc}
}

// Create alta de material. OWNER o MANAGER.
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID material del tenant por id.
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), grant.Enterprise.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List catálogo con búsqueda opcional (?search=).
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), grant.Enterprise.ID, c.Query("search"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición de material. OWNER o MANAGER.
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete baja de material. Solo OWNER.
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), grant.Enterprise.ID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
