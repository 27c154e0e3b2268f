package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// EquipmentRepository persistencia del catálogo de equipos.
type EquipmentRepository interface {
	Create(ctx context.Context, e *entity.Equipment) error
	GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Equipment, error)
	ListByEnterprise(ctx context.Context, enterpriseID, search string, limit, offset int) ([]*entity.Equipment, error)
	Update(ctx context.Context, e *entity.Equipment) error
	Delete(ctx context.Context, id string) error

	// IncrementSales ajusta el contador derivado de forma atómica
	// (UPDATE ... SET sales = sales + delta). Debe ejecutarse dentro de la
	// MISMA transacción que modifica work_equipments; nunca en commit aparte.
	IncrementSales(ctx context.Context, id string, delta int) error
}
