package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Los cuatro primeros son fallos de identidad/tenant: la capa HTTP los
// responde TODOS con el mismo mensaje genérico para no revelar cuál
// verificación falló (ni la existencia de otras empresas).
var (
	ErrUnauthenticated      = errors.New("no autenticado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrUserInactive         = errors.New("usuario inactivo")
	ErrEnterpriseNotAllowed = errors.New("empresa no autorizada para este usuario")

	// ErrRoleNotAllowed sí se expone con código propio: los menús ya ocultan
	// las acciones prohibidas, así que es UX rutinaria y no filtra nada.
	ErrRoleNotAllowed = errors.New("rol sin permiso para esta operación")

	ErrParentNotFound   = errors.New("registro padre no encontrado")
	ErrChildNotFound    = errors.New("registro referenciado no existe")
	ErrInvalidDateRange = errors.New("rango de fechas inválido")

	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrWorkNotEditable    = errors.New("la obra ya no admite modificaciones")
)
