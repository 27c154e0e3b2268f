package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/team"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// TeamHandler maneja cuadrillas y su membresía.
type TeamHandler struct {
	guard *Guard
	uc    *team.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(guard *Guard, uc *team.TeamUseCase) *TeamHandler {
	return &TeamHandler{guard: guard, uc: uc}
}

// Create alta de cuadrilla. OWNER o MANAGER.
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID cuadrilla con sus miembros.
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
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

// List cuadrillas del tenant.
func (h *TeamHandler) List(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	page := pageFromQuery(c)
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), grant.Enterprise.ID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición de cuadrilla. OWNER o MANAGER.
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina la cuadrilla. Solo OWNER.
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), grant.Enterprise.ID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReconcileMembers converge la membresía hacia el conjunto enviado.
func (h *TeamHandler) ReconcileMembers(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReconcileMembersRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ReconcileMembers(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in.UserIDs); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
