package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/report"
	"github.com/soltecla/solarops-api/internal/application/work"
	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// WorkHandler maneja obras: CRUD, ciclo de vida, reconciliación de equipos,
// materiales, transacciones e informe PDF.
type WorkHandler struct {
	guard    *Guard
	uc       *work.WorkUseCase
	reportUC *report.ReportUseCase
}

// NewWorkHandler construye el handler.
func NewWorkHandler(guard *Guard, uc *work.WorkUseCase, reportUC *report.ReportUseCase) *WorkHandler {
	return &WorkHandler{guard: guard, uc: uc, reportUC: reportUC}
}

// Create alta de obra. OWNER o MANAGER.
func (h *WorkHandler) Create(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateWorkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obra completa con equipos, materiales y transacciones.
func (h *WorkHandler) GetByID(c *fiber.Ctx) error {
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

// List obras del tenant, filtro opcional ?status=.
func (h *WorkHandler) List(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	page := pageFromQuery(c)
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), grant.Enterprise.ID, entity.WorkStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edición de datos generales. OWNER o MANAGER.
func (h *WorkHandler) Update(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateWorkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finish transición terminal a COMPLETED. OWNER o MANAGER.
func (h *WorkHandler) Finish(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Finish(c.UserContext(), grant.Enterprise.ID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel transición terminal a CANCELLED. OWNER o MANAGER.
func (h *WorkHandler) Cancel(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Cancel(c.UserContext(), grant.Enterprise.ID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReconcileEquipment converge la lista de equipos de la obra hacia el
// conjunto enviado. OWNER, MANAGER o EMPLOYEE.
func (h *WorkHandler) ReconcileEquipment(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReconcileWorkEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ReconcileEquipment(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in.Equipments); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMaterial registra un material consumido.
func (h *WorkHandler) AddMaterial(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddWorkMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddMaterial(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveMaterial elimina un material consumido.
func (h *WorkHandler) RemoveMaterial(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RemoveMaterial(c.UserContext(), grant.Enterprise.ID, c.Params("id"), c.Params("materialId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddTransaction registra un movimiento financiero. OWNER o MANAGER.
func (h *WorkHandler) AddTransaction(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddTransaction(c.UserContext(), grant.Enterprise.ID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveTransaction elimina un movimiento financiero. OWNER o MANAGER.
func (h *WorkHandler) RemoveTransaction(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RemoveTransaction(c.UserContext(), grant.Enterprise.ID, c.Params("id"), c.Params("transactionId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadReport descarga el informe PDF de la obra.
func (h *WorkHandler) DownloadReport(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.reportUC.DownloadWorkReport(c.UserContext(), grant.Enterprise.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
