package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/analytics"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// DashboardHandler expone los agregados financieros del tenant.
type DashboardHandler struct {
	guard *Guard
	uc    *analytics.SummaryUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(guard *Guard, uc *analytics.SummaryUseCase) *DashboardHandler {
	return &DashboardHandler{guard: guard, uc: uc}
}

// Summary resumen del período (?from=&to=, YYYY-MM-DD) con comparación contra
// el período anterior de igual longitud y serie diaria. OWNER o MANAGER.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), grant.Enterprise.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
