package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, enterprise_id, name, unit, price, created_at, updated_at`

// MaterialRepo implementación del puerto MaterialRepository sobre
// PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.EnterpriseID, m.Name, m.Unit, m.Price, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByIDAndEnterprise carga el material SOLO si pertenece al tenant.
func (r *MaterialRepo) GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 AND enterprise_id = $2`
	var m entity.Material
	err := r.q.QueryRow(ctx, query, id, enterpriseID).Scan(
		&m.ID, &m.EnterpriseID, &m.Name, &m.Unit, &m.Price, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// ListByEnterprise lista el catálogo con búsqueda normalizada opcional.
func (r *MaterialRepo) ListByEnterprise(ctx context.Context, enterpriseID, search string, limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE enterprise_id = $1
		  AND ($2 = '' OR unaccent(lower(name)) LIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, enterpriseID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.EnterpriseID, &m.Name, &m.Unit, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza un material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `UPDATE materials SET name = $2, unit = $3, price = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Unit, m.Price, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// Delete elimina un material.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
