package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// TransactionRepository persistencia de movimientos financieros de obra.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	GetByIDAndWork(ctx context.Context, id, workID string) (*entity.Transaction, error)
	ListByWork(ctx context.Context, workID string) ([]entity.Transaction, error)
	Delete(ctx context.Context, id string) error
}
