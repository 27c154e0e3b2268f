package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
)

// respondError traduce errores de dominio a HTTP.
//
// Los cuatro fallos de identidad comparten un único 401 con el MISMO cuerpo:
// el cliente no puede distinguir "no existe" de "bloqueado" ni de "empresa
// ajena", y no se filtra la existencia de recursos de otros tenants.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrUserInactive),
		errors.Is(err, domain.ErrEnterpriseNotAllowed):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})

	case errors.Is(err, domain.ErrRoleNotAllowed):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})

	case errors.Is(err, domain.ErrParentNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})

	case errors.Is(err, domain.ErrWorkNotEditable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WORK_NOT_EDITABLE", Message: "la obra ya no admite cambios"})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})

	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})

	case errors.Is(err, domain.ErrChildNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REFERENCE", Message: "alguna referencia del cuerpo no existe en esta empresa"})

	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de entrada inválidos"})

	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
