package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// MaterialRepository persistencia del catálogo de materiales.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Material, error)
	ListByEnterprise(ctx context.Context, enterpriseID, search string, limit, offset int) ([]*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	Delete(ctx context.Context, id string) error
}
