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

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const equipmentColumns = `id, enterprise_id, name, brand, model, price, quantity, sales, created_at, updated_at`

// EquipmentRepo implementación del puerto EquipmentRepository sobre
// PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

// Create persiste un nuevo equipo con sales en cero.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	query := `
		INSERT INTO equipments (` + equipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.EnterpriseID, e.Name, e.Brand, e.Model, e.Price, e.Quantity, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

// GetByIDAndEnterprise carga el equipo SOLO si pertenece al tenant.
func (r *EquipmentRepo) GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipments WHERE id = $1 AND enterprise_id = $2`
	var e entity.Equipment
	err := r.q.QueryRow(ctx, query, id, enterpriseID).Scan(
		&e.ID, &e.EnterpriseID, &e.Name, &e.Brand, &e.Model, &e.Price, &e.Quantity, &e.Sales,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get equipment: %w", err)
	}
	return &e, nil
}

// ListByEnterprise lista el catálogo con búsqueda normalizada opcional.
func (r *EquipmentRepo) ListByEnterprise(ctx context.Context, enterpriseID, search string, limit, offset int) ([]*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipments
		WHERE enterprise_id = $1
		  AND ($2 = '' OR unaccent(lower(name || ' ' || brand || ' ' || model)) LIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, enterpriseID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list equipments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Equipment
	for rows.Next() {
		var e entity.Equipment
		if err := rows.Scan(
			&e.ID, &e.EnterpriseID, &e.Name, &e.Brand, &e.Model, &e.Price, &e.Quantity, &e.Sales,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza los datos de catálogo. El contador sales NO se toca aquí.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	query := `
		UPDATE equipments
		SET name = $2, brand = $3, model = $4, price = $5, quantity = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, e.ID, e.Name, e.Brand, e.Model, e.Price, e.Quantity, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// Delete elimina el equipo. Si alguna obra lo referencia la FK lo impide.
func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}

// IncrementSales ajusta el contador derivado de forma atómica. Debe
// ejecutarse dentro de la misma transacción que toca work_equipments.
func (r *EquipmentRepo) IncrementSales(ctx context.Context, id string, delta int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE equipments SET sales = sales + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("increment sales: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChildNotFound
	}
	return nil
}
