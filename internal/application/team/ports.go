package team

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// TxRunner ejecuta la reconciliación de miembros dentro de una transacción:
// las altas y bajas calculadas se aplican juntas o no se aplica ninguna.
type TxRunner interface {
	RunMemberReconcile(ctx context.Context, fn func(
		teamRepo repository.TeamRepository,
		userRepo repository.UserRepository,
	) error) error
}
