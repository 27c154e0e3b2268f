package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, enterprise_id, work_id, description, amount, date, created_at`

// TransactionRepo movimientos financieros de obra sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un movimiento financiero. El signo de amount determina si
// es ingreso (>= 0) o gasto (< 0).
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.EnterpriseID, t.WorkID, t.Description, t.Amount, t.Date, t.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByIDAndWork carga el movimiento SOLO si pertenece a la obra.
func (r *TransactionRepo) GetByIDAndWork(ctx context.Context, id, workID string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND work_id = $2`
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id, workID).Scan(
		&t.ID, &t.EnterpriseID, &t.WorkID, &t.Description, &t.Amount, &t.Date, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByWork devuelve los movimientos de la obra, del más antiguo al más nuevo.
func (r *TransactionRepo) ListByWork(ctx context.Context, workID string) ([]entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE work_id = $1 ORDER BY date, created_at`
	rows, err := r.q.Query(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.EnterpriseID, &t.WorkID, &t.Description, &t.Amount, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina un movimiento financiero.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
