package work

import (
	"context"
	"time"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/reconcile"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// ReconcileEquipment converge la lista de equipos de la obra hacia el
// conjunto deseado. Todo ocurre dentro de una transacción: se relee la obra
// (padre) y el estado actual, se calcula el plan y se aplica en orden:
// ajustes de contador, cantidades de la intersección, bajas y altas.
// Idempotente: repetir la llamada con el mismo conjunto no produce ninguna
// escritura.
func (uc *WorkUseCase) ReconcileEquipment(ctx context.Context, enterpriseID, workID string, desired []dto.WorkEquipmentItem) error {
	target := make([]reconcile.Item, 0, len(desired))
	desiredQty := make(map[string]int, len(desired))
	for _, it := range desired {
		if it.EquipmentID == "" || it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		target = append(target, reconcile.Item{ID: it.EquipmentID, Quantity: it.Quantity})
		desiredQty[it.EquipmentID] += it.Quantity
	}

	now := time.Now()
	return uc.txRunner.RunEquipmentReconcile(ctx, func(
		workRepo repository.WorkRepository,
		workEquipRepo repository.WorkEquipmentRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		// La carga acotada al tenant es a la vez el chequeo de "padre existe".
		// FOR UPDATE: dos reconciliaciones concurrentes sobre la misma obra
		// quedan serializadas y la segunda relee el estado ya aplicado.
		w, err := workRepo.GetByIDAndEnterpriseForUpdate(ctx, workID, enterpriseID)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrParentNotFound
		}
		if !w.Editable() {
			return domain.ErrWorkNotEditable
		}

		stored, err := workEquipRepo.ListByWork(ctx, workID)
		if err != nil {
			return err
		}
		current := make([]reconcile.Item, 0, len(stored))
		for _, we := range stored {
			current = append(current, reconcile.Item{ID: we.EquipmentID, Quantity: we.Quantity})
		}

		plan := reconcile.DiffQuantified(current, target)
		if plan.Empty() {
			return nil // nada que escribir: segunda llamada idéntica
		}

		// 1. Ajustes de contador (altas, bajas e intersección con delta).
		for _, d := range plan.CounterDeltas() {
			if err := equipmentRepo.IncrementSales(ctx, d.ID, d.Delta); err != nil {
				return err
			}
		}
		// 2. Intersección: la fila almacenada debe quedar en la cantidad
		// deseada, no solo el contador; si no, la siguiente llamada leería
		// la cantidad vieja y re-aplicaría el delta.
		for _, a := range plan.Adjust {
			if err := workEquipRepo.UpdateQuantity(ctx, workID, a.ID, desiredQty[a.ID]); err != nil {
				return err
			}
		}
		// 3. Bajas.
		for _, it := range plan.ToRemove {
			if err := workEquipRepo.Remove(ctx, workID, it.ID); err != nil {
				return err
			}
		}
		// 4. Altas. Un equipment_id inexistente viola la FK y el repositorio
		// lo traduce a ErrChildNotFound; la transacción entera se revierte.
		for _, it := range plan.ToAdd {
			we := &entity.WorkEquipment{
				WorkID:      workID,
				EquipmentID: it.ID,
				Quantity:    it.Quantity,
				CreatedAt:   now,
			}
			if err := workEquipRepo.Add(ctx, we); err != nil {
				return err
			}
		}
		return nil
	})
}
