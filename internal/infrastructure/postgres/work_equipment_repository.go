package postgres

import (
	"context"
	"fmt"

	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.WorkEquipmentRepository = (*WorkEquipmentRepo)(nil)

// WorkEquipmentRepo asociación (work_id, equipment_id, quantity) sobre
// PostgreSQL (usable con pool o tx).
type WorkEquipmentRepo struct {
	q Querier
}

// NewWorkEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkEquipmentRepository(q Querier) *WorkEquipmentRepo {
	return &WorkEquipmentRepo{q: q}
}

// ListByWork devuelve las filas de asociación de la obra.
func (r *WorkEquipmentRepo) ListByWork(ctx context.Context, workID string) ([]entity.WorkEquipment, error) {
	query := `
		SELECT work_id, equipment_id, quantity, created_at
		FROM work_equipments WHERE work_id = $1 ORDER BY equipment_id`
	rows, err := r.q.Query(ctx, query, workID)
	if err != nil {
		return nil, fmt.Errorf("list work equipments: %w", err)
	}
	defer rows.Close()
	var list []entity.WorkEquipment
	for rows.Next() {
		var we entity.WorkEquipment
		if err := rows.Scan(&we.WorkID, &we.EquipmentID, &we.Quantity, &we.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan work equipment: %w", err)
		}
		list = append(list, we)
	}
	return list, rows.Err()
}

// Add inserta una fila de asociación. Un equipment_id inexistente viola la
// FK y se traduce a ErrChildNotFound: la transacción entera se revierte.
func (r *WorkEquipmentRepo) Add(ctx context.Context, we *entity.WorkEquipment) error {
	query := `
		INSERT INTO work_equipments (work_id, equipment_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, we.WorkID, we.EquipmentID, we.Quantity, we.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add work equipment: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad almacenada de la fila de asociación.
func (r *WorkEquipmentRepo) UpdateQuantity(ctx context.Context, workID, equipmentID string, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE work_equipments SET quantity = $3 WHERE work_id = $1 AND equipment_id = $2`,
		workID, equipmentID, quantity)
	if err != nil {
		return fmt.Errorf("update work equipment quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChildNotFound
	}
	return nil
}

// Remove elimina la fila de asociación.
func (r *WorkEquipmentRepo) Remove(ctx context.Context, workID, equipmentID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM work_equipments WHERE work_id = $1 AND equipment_id = $2`, workID, equipmentID)
	if err != nil {
		return fmt.Errorf("remove work equipment: %w", err)
	}
	return nil
}
