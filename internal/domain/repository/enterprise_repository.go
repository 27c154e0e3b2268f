package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// EnterpriseRepository persistencia de empresas y de su asociación de owners.
type EnterpriseRepository interface {
	Create(ctx context.Context, e *entity.Enterprise) error
	GetByID(ctx context.Context, id string) (*entity.Enterprise, error)
	// GetByIDForUpdate variante con bloqueo de fila (SELECT FOR UPDATE) para
	// serializar reconciliaciones concurrentes del conjunto de owners.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Enterprise, error)
	Update(ctx context.Context, e *entity.Enterprise) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Enterprise, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.Enterprise, error) // plataforma

	// OwnerExists verifica la membresía (enterprise_id, user_id) en enterprise_owners.
	// Es la consulta que el resolver de tenant ejecuta en CADA petición.
	OwnerExists(ctx context.Context, enterpriseID, userID string) (bool, error)
	ListOwnerIDs(ctx context.Context, enterpriseID string) ([]string, error)
	AddOwner(ctx context.Context, enterpriseID, userID string) error
	RemoveOwner(ctx context.Context, enterpriseID, userID string) error
}
