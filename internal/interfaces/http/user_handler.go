package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/usecase"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/pkg/logger"
)

// FileRemover borra archivos del storage. Lo ejecuta el handler DESPUÉS de
// que el caso de uso confirmó la escritura (outbox de claves reemplazadas).
type FileRemover interface {
	Destroy(ctx context.Context, key string) error
}

// UserHandler maneja plantilla (MANAGER/EMPLOYEE), clientes y perfil propio.
type UserHandler struct {
	guard   *Guard
	uc      *usecase.UserUseCase
	remover FileRemover
	log     *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(guard *Guard, uc *usecase.UserUseCase, remover FileRemover, log *logger.Logger) *UserHandler {
	return &UserHandler{guard: guard, uc: uc, remover: remover, log: log}
}

// CreateStaff alta de MANAGER o EMPLOYEE. Solo OWNER.
func (h *UserHandler) CreateStaff(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateStaff(c.UserContext(), grant.EffectiveOwnerID, grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateCustomer alta de CUSTOMER. OWNER o MANAGER.
func (h *UserHandler) CreateCustomer(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCustomer(c.UserContext(), grant.EffectiveOwnerID, grant.Enterprise.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStaff listado de plantilla con búsqueda opcional (?search=).
func (h *UserHandler) ListStaff(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListStaff(c.UserContext(), grant.Enterprise.ID, c.Query("search"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCustomers listado de clientes con búsqueda opcional.
func (h *UserHandler) ListCustomers(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListCustomers(c.UserContext(), grant.Enterprise.ID, c.Query("search"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID usuario del tenant por id.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
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

// Block bloquea una cuenta del tenant. Solo OWNER.
func (h *UserHandler) Block(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

// Unblock desbloquea una cuenta del tenant. Solo OWNER.
func (h *UserHandler) Unblock(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *UserHandler) setActive(c *fiber.Ctx, active bool) error {
	grant, err := h.guard.Resolve(c, entity.RoleOwner)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.SetActive(c.UserContext(), grant.Enterprise.ID, c.Params("id"), active); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateProfile perfil propio (cualquier rol autenticado). Ejecuta el outbox
// de archivos reemplazados después de confirmar la escritura; un fallo de
// borrado se registra pero no rompe la respuesta.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	grant, err := h.guard.Resolve(c,
		entity.RoleAdministrator, entity.RoleOwner, entity.RoleManager, entity.RoleEmployee, entity.RoleCustomer)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), grant.User.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	for _, key := range out.PendingRemoval {
		if err := h.remover.Destroy(c.UserContext(), key); err != nil {
			h.log.Warn().Str("key", key).Err(err).Msg("no se pudo eliminar archivo reemplazado")
		}
	}
	return c.JSON(out.User)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
}
