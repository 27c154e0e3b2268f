package auth

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// TxRunner ejecuta el alta de OWNER dentro de una transacción de BD:
// usuario + empresa + fila de ownership se confirman juntos o ninguno.
type TxRunner interface {
	RunSignup(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		enterpriseRepo repository.EnterpriseRepository,
	) error) error
}
