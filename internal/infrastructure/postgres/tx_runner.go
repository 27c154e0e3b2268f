package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soltecla/solarops-api/internal/application/auth"
	"github.com/soltecla/solarops-api/internal/application/enterprise"
	"github.com/soltecla/solarops-api/internal/application/team"
	"github.com/soltecla/solarops-api/internal/application/work"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ auth.TxRunner = (*TxRunner)(nil)
var _ work.TxRunner = (*TxRunner)(nil)
var _ team.TxRunner = (*TxRunner)(nil)
var _ enterprise.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSignup transacción del registro de OWNER: usuario + empresa + ownership.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	enterpriseRepo repository.EnterpriseRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewUserRepository(q), NewEnterpriseRepository(q))
	})
}

// RunEquipmentReconcile transacción de la reconciliación de equipos de obra:
// los ajustes del contador sales y las filas de asociación viajan juntos.
func (r *TxRunner) RunEquipmentReconcile(ctx context.Context, fn func(
	workRepo repository.WorkRepository,
	workEquipRepo repository.WorkEquipmentRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewWorkRepository(q), NewWorkEquipmentRepository(q), NewEquipmentRepository(q))
	})
}

// RunMemberReconcile transacción de la reconciliación de miembros de cuadrilla.
func (r *TxRunner) RunMemberReconcile(ctx context.Context, fn func(
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewTeamRepository(q), NewUserRepository(q))
	})
}

// RunOwnerReconcile transacción sobre empresas y su asociación de owners.
func (r *TxRunner) RunOwnerReconcile(ctx context.Context, fn func(
	enterpriseRepo repository.EnterpriseRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewEnterpriseRepository(q), NewUserRepository(q))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
