package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// TeamRepository persistencia de cuadrillas y su membresía.
type TeamRepository interface {
	Create(ctx context.Context, t *entity.Team) error
	// GetByIDAndEnterprise carga la cuadrilla SOLO si pertenece al tenant.
	GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Team, error)
	// GetByIDAndEnterpriseForUpdate variante con bloqueo de fila (SELECT FOR
	// UPDATE) para serializar reconciliaciones concurrentes de miembros.
	GetByIDAndEnterpriseForUpdate(ctx context.Context, id, enterpriseID string) (*entity.Team, error)
	ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*entity.Team, error)
	Update(ctx context.Context, t *entity.Team) error
	Delete(ctx context.Context, id string) error

	ListMemberIDs(ctx context.Context, teamID string) ([]string, error)
	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
}
