package work

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// TxRunner ejecuta la reconciliación de equipos dentro de UNA transacción de
// BD, pasando repositorios atados a esa tx. Los ajustes del contador sales y
// los cambios de filas de asociación nunca se parten en commits separados:
// si un paso falla, todo se revierte y no queda estado parcial observable.
type TxRunner interface {
	RunEquipmentReconcile(ctx context.Context, fn func(
		workRepo repository.WorkRepository,
		workEquipRepo repository.WorkEquipmentRepository,
		equipmentRepo repository.EquipmentRepository,
	) error) error
}
