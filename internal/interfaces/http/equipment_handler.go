package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/usecase"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// EquipmentHandler maneja el catálogo de equipos.
type EquipmentHandler struct {
	guard *Guard
	uc    *usecase.EquipmentUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(guard *Guard, uc *usecase.EquipmentUseCase) *EquipmentHandler {
	return &EquipmentHandler{guard: guard, uc: uc}
}

// Create alta de equipo. OWNER o MANAGER.
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID equipo del tenant por id.
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
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
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
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

// Update edición de equipo. OWNER o MANAGER.
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete baja de equipo. Solo OWNER.
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), grant.Enterprise.ID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
