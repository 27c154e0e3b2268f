package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/enterprise"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// EnterpriseHandler maneja empresas del OWNER y su conjunto de owners.
type EnterpriseHandler struct {
	guard *Guard
	uc    *enterprise.EnterpriseUseCase
}

// NewEnterpriseHandler construye el handler.
func NewEnterpriseHandler(guard *Guard, uc *enterprise.EnterpriseUseCase) *EnterpriseHandler {
	return &EnterpriseHandler{guard: guard, uc: uc}
}

// Create alta de empresa adicional. Solo OWNER.
func (h *EnterpriseHandler) Create(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateEnterpriseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), grant.User.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get datos de la empresa activa.
func (h *EnterpriseHandler) Get(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), grant.Enterprise.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMine empresas donde el solicitante figura como owner.
func (h *EnterpriseHandler) ListMine(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMine(c.UserContext(), grant.User.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición de la empresa activa. Solo OWNER.
func (h *EnterpriseHandler) Update(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateEnterpriseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReconcileOwners converge el conjunto de owners de la empresa activa.
// Responde con el conjunto aplicado, que incluye siempre al solicitante.
func (h *EnterpriseHandler) ReconcileOwners(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReconcileOwnersRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	applied, err := h.uc.ReconcileOwners(c.UserContext(), grant.Enterprise.ID, grant.User.ID, in.OwnerIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileOwnersResponse{OwnerIDs: applied})
}
