package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/enterprise"
	"github.com/soltecla/solarops-api/internal/application/usecase"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// AdminHandler listados de plataforma. Solo ADMINISTRATOR.
type AdminHandler struct {
	guard        *Guard
	userUC       *usecase.UserUseCase
	enterpriseUC *enterprise.EnterpriseUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(guard *Guard, userUC *usecase.UserUseCase, enterpriseUC *enterprise.EnterpriseUseCase) *AdminHandler {
	return &AdminHandler{guard: guard, userUC: userUC, enterpriseUC: enterpriseUC}
}

// ListUsers todos los usuarios de la plataforma.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	if _, err := h.guard.Resolve(c, entity.RoleAdministrator); err != nil {
		return respondError(c, err)
	}
	out, err := h.userUC.ListAll(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BlockUser bloquea cualquier cuenta de la plataforma.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

// UnblockUser desbloquea cualquier cuenta de la plataforma.
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *AdminHandler) setActive(c *fiber.Ctx, active bool) error {
	if _, err := h.guard.Resolve(c, entity.RoleAdministrator); err != nil {
		return respondError(c, err)
	}
	if err := h.userUC.SetActiveAny(c.UserContext(), c.Params("id"), active); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListEnterprises todas las empresas de la plataforma.
func (h *AdminHandler) ListEnterprises(c *fiber.Ctx) error {
	if _, err := h.guard.Resolve(c, entity.RoleAdministrator); err != nil {
		return respondError(c, err)
	}
	page := pageFromQuery(c)
	page.DefaultPage()
	out, err := h.enterpriseUC.ListAll(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
