package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// WorkRepository persistencia de obras.
type WorkRepository interface {
	Create(ctx context.Context, w *entity.Work) error
	// GetByIDAndEnterprise carga la obra SOLO si pertenece al tenant.
	GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Work, error)
	// GetByIDAndEnterpriseForUpdate igual que GetByIDAndEnterprise pero
	// bloquea la fila (SELECT FOR UPDATE). Es la carga de "padre existe" de
	// la reconciliación: serializa dos reconciliaciones concurrentes sobre la
	// misma obra para que los deltas de contador no se apliquen dos veces.
	GetByIDAndEnterpriseForUpdate(ctx context.Context, id, enterpriseID string) (*entity.Work, error)
	ListByEnterprise(ctx context.Context, enterpriseID string, status entity.WorkStatus, limit, offset int) ([]*entity.Work, error)
	Update(ctx context.Context, w *entity.Work) error
	UpdateStatus(ctx context.Context, id string, status entity.WorkStatus) error
}

// WorkEquipmentRepository asociación (work_id, equipment_id, quantity).
type WorkEquipmentRepository interface {
	ListByWork(ctx context.Context, workID string) ([]entity.WorkEquipment, error)
	Add(ctx context.Context, we *entity.WorkEquipment) error
	// UpdateQuantity fija la cantidad almacenada de una fila existente. La
	// reconciliación la invoca para los ids de la intersección: la fila debe
	// reflejar la cantidad deseada, no solo el contador derivado.
	UpdateQuantity(ctx context.Context, workID, equipmentID string, quantity int) error
	Remove(ctx context.Context, workID, equipmentID string) error
}

// WorkMaterialRepository materiales consumidos por obra.
type WorkMaterialRepository interface {
	Create(ctx context.Context, wm *entity.WorkMaterial) error
	GetByIDAndWork(ctx context.Context, id, workID string) (*entity.WorkMaterial, error)
	ListByWork(ctx context.Context, workID string) ([]entity.WorkMaterial, error)
	Update(ctx context.Context, wm *entity.WorkMaterial) error
	Delete(ctx context.Context, id string) error
}
