package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.WorkMaterialRepository = (*WorkMaterialRepo)(nil)

const workMaterialColumns = `id, work_id, name, unit, amount, quantity, created_at`

// WorkMaterialRepo materiales consumidos por obra sobre PostgreSQL
// (usable con pool o tx).
type WorkMaterialRepo struct {
	q Querier
}

// NewWorkMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkMaterialRepository(q Querier) *WorkMaterialRepo {
	return &WorkMaterialRepo{q: q}
}

// Create persiste un material consumido.
func (r *WorkMaterialRepo) Create(ctx context.Context, wm *entity.WorkMaterial) error {
	query := `
		INSERT INTO work_materials (` + workMaterialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		wm.ID, wm.WorkID, wm.Name, wm.Unit, wm.Amount, wm.Quantity, wm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work material: %w", err)
	}
	return nil
}

// GetByIDAndWork carga el material SOLO si pertenece a la obra.
func (r *WorkMaterialRepo) GetByIDAndWork(ctx context.Context, id, workID string) (*entity.WorkMaterial, error) {
	query := `SELECT ` + workMaterialColumns + ` FROM work_materials WHERE id = $1 AND work_id = $2`
	var wm entity.WorkMaterial
	err := r.q.QueryRow(ctx, query, id, workID).Scan(
		&wm.ID, &wm.WorkID, &wm.Name, &wm.Unit, &wm.Amount, &wm.Quantity, &wm.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work material: %w", err)
	}
	return &wm, nil
}

// ListByWork devuelve los materiales de la obra.
func (r *WorkMaterialRepo) ListByWork(ctx context.Context, workID string) ([]entity.WorkMaterial, error) {
	query := `SELECT ` + workMaterialColumns + ` FROM work_materials WHERE work_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("list work materials: %w", err)
	}
	defer rows.Close()
	var list []entity.WorkMaterial
	for rows.Next() {
		var wm entity.WorkMaterial
		if err := rows.Scan(&wm.ID, &wm.WorkID, &wm.Name, &wm.Unit, &wm.Amount, &wm.Quantity, &wm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan work material: %w", err)
		}
		list = append(list, wm)
	}
	return list, rows.Err()
}

// Update actualiza un material consumido.
func (r *WorkMaterialRepo) Update(ctx context.Context, wm *entity.WorkMaterial) error {
	query := `UPDATE work_materials SET name = $2, unit = $3, amount = $4, quantity = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, wm.ID, wm.Name, wm.Unit, wm.Amount, wm.Quantity)
	if err != nil {
		return fmt.Errorf("update work material: %w", err)
	}
	return nil
}

// Delete elimina un material consumido.
func (r *WorkMaterialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM work_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work material: %w", err)
	}
	return nil
}
