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

var _ repository.WorkRepository = (*WorkRepo)(nil)

const workColumns = `id, enterprise_id, customer_id, team_id, title, description, address, status, created_at, updated_at`

// WorkRepo implementación del puerto WorkRepository sobre PostgreSQL
// (usable con pool o tx).
type WorkRepo struct {
	q Querier
}

// NewWorkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkRepository(q Querier) *WorkRepo {
	return &WorkRepo{q: q}
}

// Create persiste una nueva obra.
func (r *WorkRepo) Create(ctx context.Context, w *entity.Work) error {
	query := `
		INSERT INTO works (` + workColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.EnterpriseID, w.CustomerID, w.TeamID, w.Title, w.Description, w.Address,
		w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		return fmt.Errorf("insert work: %w", err)
	}
	return nil
}

// GetByIDAndEnterprise carga la obra SOLO si pertenece al tenant.
func (r *WorkRepo) GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works WHERE id = $1 AND enterprise_id = $2`
	return r.getOne(ctx, query, id, enterpriseID)
}

// GetByIDAndEnterpriseForUpdate carga la obra y bloquea la fila (SELECT FOR
// UPDATE). Dos reconciliaciones concurrentes sobre la misma obra quedan
// serializadas: la segunda espera el commit de la primera y relee el estado
// ya aplicado, sin doble aplicación de deltas de contador.
func (r *WorkRepo) GetByIDAndEnterpriseForUpdate(ctx context.Context, id, enterpriseID string) (*entity.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works WHERE id = $1 AND enterprise_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, id, enterpriseID)
}

func (r *WorkRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Work, error) {
	var w entity.Work
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&w.ID, &w.EnterpriseID, &w.CustomerID, &w.TeamID, &w.Title, &w.Description, &w.Address,
		&w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work: %w", err)
	}
	return &w, nil
}

// ListByEnterprise lista las obras del tenant, con filtro de estado opcional.
func (r *WorkRepo) ListByEnterprise(ctx context.Context, enterpriseID string, status entity.WorkStatus, limit, offset int) ([]*entity.Work, error) {
	query := `
		SELECT ` + workColumns + `
		FROM works
		WHERE enterprise_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, enterpriseID, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	defer rows.Close()
	var list []*entity.Work
	for rows.Next() {
		var w entity.Work
		if err := rows.Scan(
			&w.ID, &w.EnterpriseID, &w.CustomerID, &w.TeamID, &w.Title, &w.Description, &w.Address,
			&w.Status, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Update actualiza los datos generales de la obra.
func (r *WorkRepo) Update(ctx context.Context, w *entity.Work) error {
	query := `
		UPDATE works
		SET team_id = $2, title = $3, description = $4, address = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, w.ID, w.TeamID, w.Title, w.Description, w.Address, w.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		return fmt.Errorf("update work: %w", err)
	}
	return nil
}

// UpdateStatus aplica una transición de estado.
func (r *WorkRepo) UpdateStatus(ctx context.Context, id string, status entity.WorkStatus) error {
	_, err := r.q.Exec(ctx,
		`UPDATE works SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update work status: %w", err)
	}
	return nil
}
