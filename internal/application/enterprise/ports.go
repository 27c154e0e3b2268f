package enterprise

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// TxRunner agrupa en una transacción las escrituras sobre empresas y su
// asociación de owners (alta de empresa adicional, reconciliación de owners).
type TxRunner interface {
	RunOwnerReconcile(ctx context.Context, fn func(
		enterpriseRepo repository.EnterpriseRepository,
		userRepo repository.UserRepository,
	) error) error
}
