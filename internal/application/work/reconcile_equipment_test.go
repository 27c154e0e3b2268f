package work_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/application/work"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con contadores de escritura y rollback simulado
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	work        *entity.Work
	rows        map[string]int // equipment_id -> quantity en work_equipments
	sales       map[string]int // equipment_id -> contador sales
	equipments  map[string]bool
	writes      int
	lockedLoads int // cargas de la obra con bloqueo de fila
}

func (s *store) snapshot() *store {
	cp := &store{work: s.work, equipments: s.equipments, writes: s.writes, lockedLoads: s.lockedLoads}
	cp.rows = make(map[string]int, len(s.rows))
	for k, v := range s.rows {
		cp.rows[k] = v
	}
	cp.sales = make(map[string]int, len(s.sales))
	for k, v := range s.sales {
		cp.sales[k] = v
	}
	return cp
}

type fakeWorkRepo struct {
	repository.WorkRepository
	s *store
}

func (f *fakeWorkRepo) GetByIDAndEnterprise(_ context.Context, id, enterpriseID string) (*entity.Work, error) {
	w := f.s.work
	if w == nil || w.ID != id || w.EnterpriseID != enterpriseID {
		return nil, nil
	}
	return w, nil
}

func (f *fakeWorkRepo) GetByIDAndEnterpriseForUpdate(ctx context.Context, id, enterpriseID string) (*entity.Work, error) {
	f.s.lockedLoads++
	return f.GetByIDAndEnterprise(ctx, id, enterpriseID)
}

type fakeWorkEquipRepo struct {
	repository.WorkEquipmentRepository
	s *store
}

func (f *fakeWorkEquipRepo) ListByWork(_ context.Context, workID string) ([]entity.WorkEquipment, error) {
	var out []entity.WorkEquipment
	for id, qty := range f.s.rows {
		out = append(out, entity.WorkEquipment{WorkID: workID, EquipmentID: id, Quantity: qty})
	}
	return out, nil
}

func (f *fakeWorkEquipRepo) Add(_ context.Context, we *entity.WorkEquipment) error {
	if !f.s.equipments[we.EquipmentID] {
		return domain.ErrChildNotFound // emula la violación de FK traducida
	}
	f.s.rows[we.EquipmentID] = we.Quantity
	f.s.writes++
	return nil
}

func (f *fakeWorkEquipRepo) UpdateQuantity(_ context.Context, _, equipmentID string, quantity int) error {
	if _, ok := f.s.rows[equipmentID]; !ok {
		return domain.ErrChildNotFound
	}
	f.s.rows[equipmentID] = quantity
	f.s.writes++
	return nil
}

func (f *fakeWorkEquipRepo) Remove(_ context.Context, _, equipmentID string) error {
	delete(f.s.rows, equipmentID)
	f.s.writes++
	return nil
}

type fakeEquipmentRepo struct {
	repository.EquipmentRepository
	s *store
}

func (f *fakeEquipmentRepo) IncrementSales(_ context.Context, id string, delta int) error {
	f.s.sales[id] += delta
	f.s.writes++
	return nil
}

// fakeTxRunner ejecuta fn y, si falla, restaura el snapshot: emula el
// rollback de la transacción real.
type fakeTxRunner struct{ s *store }

func (f *fakeTxRunner) RunEquipmentReconcile(_ context.Context, fn func(
	repository.WorkRepository,
	repository.WorkEquipmentRepository,
	repository.EquipmentRepository,
) error) error {
	before := f.s.snapshot()
	err := fn(&fakeWorkRepo{s: f.s}, &fakeWorkEquipRepo{s: f.s}, &fakeEquipmentRepo{s: f.s})
	if err != nil {
		*f.s = *before
	}
	return err
}

func newFixture(status entity.WorkStatus) (*work.WorkUseCase, *store) {
	s := &store{
		work:       &entity.Work{ID: "W1", EnterpriseID: "E1", Status: status},
		rows:       map[string]int{},
		sales:      map[string]int{},
		equipments: map[string]bool{"eqA": true, "eqB": true, "eqC": true},
	}
	uc := work.NewWorkUseCase(&fakeTxRunner{s: s}, nil, nil, nil, nil, nil, nil)
	return uc, s
}

func items(pairs ...dto.WorkEquipmentItem) []dto.WorkEquipmentItem { return pairs }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: {(eqA,2)} con eqA.sales=2 reconciliado hacia
// {(eqA,5),(eqB,1)} deja eqA.sales=5, eqB.sales=1 y dos filas.
func TestReconcileEquipment_EscenarioDeReferencia(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)
	s.rows["eqA"] = 2
	s.sales["eqA"] = 2

	err := uc.ReconcileEquipment(context.Background(), "E1", "W1", items(
		dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 5},
		dto.WorkEquipmentItem{EquipmentID: "eqB", Quantity: 1},
	))

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"eqA": 5, "eqB": 1}, s.rows)
	assert.Equal(t, 5, s.sales["eqA"], "delta +3 sobre la intersección")
	assert.Equal(t, 1, s.sales["eqB"], "alta incrementa el contador")
}

func TestReconcileEquipment_Idempotente(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)
	desired := items(
		dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 3},
		dto.WorkEquipmentItem{EquipmentID: "eqB", Quantity: 2},
	)

	require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1", desired))
	writesAfterFirst := s.writes

	require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1", desired))
	assert.Equal(t, writesAfterFirst, s.writes,
		"la segunda llamada con el mismo conjunto no debe producir escrituras")
	assert.Equal(t, map[string]int{"eqA": 3, "eqB": 2}, s.rows)
}

// La fila de la intersección debe quedar en la cantidad deseada, no solo el
// contador: si la fila conservara la cantidad vieja, la siguiente llamada
// con el mismo conjunto calcularía de nuevo el delta y lo re-aplicaría.
func TestReconcileEquipment_AjusteActualizaFilaYNoSeReaplica(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)
	s.rows["eqA"] = 2
	s.sales["eqA"] = 2
	desired := items(
		dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 5},
		dto.WorkEquipmentItem{EquipmentID: "eqB", Quantity: 1},
	)

	require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1", desired))
	assert.Equal(t, 5, s.rows["eqA"], "la fila almacenada refleja la cantidad deseada")
	writesAfterFirst := s.writes

	require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1", desired))
	assert.Equal(t, 5, s.sales["eqA"], "el delta +3 no se aplica dos veces")
	assert.Equal(t, map[string]int{"eqA": 5, "eqB": 1}, s.rows)
	assert.Equal(t, writesAfterFirst, s.writes, "segunda llamada sin escrituras")
}

// La obra se carga con bloqueo de fila dentro de la transacción: dos
// reconciliaciones concurrentes sobre la misma obra quedan serializadas.
func TestReconcileEquipment_CargaDelPadreConBloqueo(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)

	require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1",
		items(dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 1})))

	assert.Equal(t, 1, s.lockedLoads, "la carga del padre va con FOR UPDATE")
}

func TestReconcileEquipment_ConjuntoVacioEliminaTodo(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)
	s.rows["eqA"] = 4
	s.rows["eqB"] = 1
	s.sales["eqA"] = 4
	s.sales["eqB"] = 1

	require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1", nil))

	assert.Empty(t, s.rows, "deseado vacío elimina todas las asociaciones")
	assert.Zero(t, s.sales["eqA"], "el contador se descuenta por completo")
	assert.Zero(t, s.sales["eqB"])
}

func TestReconcileEquipment_InvarianteDeContadorTrasSecuencia(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)
	sequence := [][]dto.WorkEquipmentItem{
		items(dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 2}),
		items(dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 5}, dto.WorkEquipmentItem{EquipmentID: "eqB", Quantity: 1}),
		items(dto.WorkEquipmentItem{EquipmentID: "eqC", Quantity: 7}),
		items(dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 1}, dto.WorkEquipmentItem{EquipmentID: "eqC", Quantity: 2}),
	}

	for _, desired := range sequence {
		require.NoError(t, uc.ReconcileEquipment(context.Background(), "E1", "W1", desired))
	}

	// sales == Σ quantity de las filas que referencian cada equipo.
	for id, qty := range s.rows {
		assert.Equal(t, qty, s.sales[id], "sales de %s", id)
	}
	for id, sales := range s.sales {
		if _, ok := s.rows[id]; !ok {
			assert.Zero(t, sales, "equipo %s sin filas debe tener sales 0", id)
		}
	}
}

func TestReconcileEquipment_PadreInexistente(t *testing.T) {
	uc, _ := newFixture(entity.WorkInProgress)
	err := uc.ReconcileEquipment(context.Background(), "E1", "W999", nil)
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestReconcileEquipment_ObraDeOtroTenant_PadreInexistente(t *testing.T) {
	uc, _ := newFixture(entity.WorkInProgress)
	// La obra existe pero pertenece a E1: desde E2 es indistinguible de inexistente.
	err := uc.ReconcileEquipment(context.Background(), "E2", "W1", nil)
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestReconcileEquipment_ObraTerminada_Rechazada(t *testing.T) {
	for _, status := range []entity.WorkStatus{entity.WorkCompleted, entity.WorkCancelled} {
		uc, _ := newFixture(status)
		err := uc.ReconcileEquipment(context.Background(), "E1", "W1",
			items(dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 1}))
		assert.ErrorIs(t, err, domain.ErrWorkNotEditable, string(status))
	}
}

func TestReconcileEquipment_CantidadInvalida(t *testing.T) {
	uc, _ := newFixture(entity.WorkInProgress)
	err := uc.ReconcileEquipment(context.Background(), "E1", "W1",
		items(dto.WorkEquipmentItem{EquipmentID: "eqA", Quantity: 0}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestReconcileEquipment_HijoInexistente_RollbackTotal: si una de las altas
// referencia un equipo inexistente, ni los ajustes de contador ni las bajas
// previas deben quedar aplicados.
func TestReconcileEquipment_HijoInexistente_RollbackTotal(t *testing.T) {
	uc, s := newFixture(entity.WorkInProgress)
	s.rows["eqA"] = 2
	s.sales["eqA"] = 2

	err := uc.ReconcileEquipment(context.Background(), "E1", "W1", items(
		dto.WorkEquipmentItem{EquipmentID: "eqB", Quantity: 1},
		dto.WorkEquipmentItem{EquipmentID: "fantasma", Quantity: 3},
	))

	assert.ErrorIs(t, err, domain.ErrChildNotFound)
	assert.Equal(t, map[string]int{"eqA": 2}, s.rows, "sin estado parcial observable")
	assert.Equal(t, 2, s.sales["eqA"], "el contador vuelve al valor previo")
	assert.Zero(t, s.sales["eqB"])
}
