package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltecla/solarops-api/internal/domain/reconcile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Diff (asociación simple: owners de empresa, miembros de cuadrilla)
// ──────────────────────────────────────────────────────────────────────────────

func TestDiff_AltasYBajas(t *testing.T) {
	plan := reconcile.Diff(
		[]string{"a", "b", "c"},
		[]string{"b", "c", "d", "e"},
	)

	assert.Equal(t, []string{"d", "e"}, plan.ToAdd, "deseado − actual")
	assert.Equal(t, []string{"a"}, plan.ToRemove, "actual − deseado")
	assert.False(t, plan.Empty())
}

func TestDiff_MismoConjunto_PlanVacio(t *testing.T) {
	plan := reconcile.Diff([]string{"x", "y"}, []string{"y", "x"})

	assert.True(t, plan.Empty(), "conjuntos iguales no deben producir escrituras")
	assert.Empty(t, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)
}

func TestDiff_DeseadoVacio_EliminaTodo(t *testing.T) {
	plan := reconcile.Diff([]string{"a", "b"}, nil)

	assert.Empty(t, plan.ToAdd)
	assert.Equal(t, []string{"a", "b"}, plan.ToRemove,
		"un conjunto deseado vacío es válido y elimina todas las asociaciones")
}

func TestDiff_ActualVacio_AgregaTodo(t *testing.T) {
	plan := reconcile.Diff(nil, []string{"b", "a"})

	assert.Equal(t, []string{"a", "b"}, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)
}

func TestDiff_DuplicadosColapsan(t *testing.T) {
	plan := reconcile.Diff([]string{"a", "a"}, []string{"a", "b", "b"})

	assert.Equal(t, []string{"b"}, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)
}

// TestDiff_Idempotencia: aplicar el plan y volver a diffear con el resultado
// produce un plan vacío (cero escrituras en la segunda llamada).
func TestDiff_Idempotencia(t *testing.T) {
	current := []string{"a", "b", "c"}
	desired := []string{"b", "d"}

	first := reconcile.Diff(current, desired)
	require.False(t, first.Empty())

	second := reconcile.Diff(desired, desired)
	assert.True(t, second.Empty())
}

// ──────────────────────────────────────────────────────────────────────────────
// DiffQuantified (equipos de obra, alimenta Equipment.Sales)
// ──────────────────────────────────────────────────────────────────────────────

func TestDiffQuantified_EscenarioDeReferencia(t *testing.T) {
	// Obra con {(eqA,2)}; se reconcilia hacia {(eqA,5),(eqB,1)}.
	plan := reconcile.DiffQuantified(
		[]reconcile.Item{{ID: "eqA", Quantity: 2}},
		[]reconcile.Item{{ID: "eqA", Quantity: 5}, {ID: "eqB", Quantity: 1}},
	)

	assert.Equal(t, []reconcile.Item{{ID: "eqB", Quantity: 1}}, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)
	require.Len(t, plan.Adjust, 1, "eqA está en la intersección y su delta no es cero")
	assert.Equal(t, reconcile.Adjustment{ID: "eqA", Delta: 3}, plan.Adjust[0])

	// Deltas de contador: eqA.sales +3 (2→5), eqB.sales +1.
	deltas := plan.CounterDeltas()
	assert.Equal(t, []reconcile.Adjustment{
		{ID: "eqA", Delta: 3},
		{ID: "eqB", Delta: 1},
	}, deltas)
}

func TestDiffQuantified_InterseccionSinDelta_NoAjusta(t *testing.T) {
	plan := reconcile.DiffQuantified(
		[]reconcile.Item{{ID: "eqA", Quantity: 4}},
		[]reconcile.Item{{ID: "eqA", Quantity: 4}},
	)

	assert.True(t, plan.Empty(), "misma cantidad en ambos lados: idempotente")
}

func TestDiffQuantified_BajaDescuentaCantidadAlmacenada(t *testing.T) {
	plan := reconcile.DiffQuantified(
		[]reconcile.Item{{ID: "eqA", Quantity: 7}},
		nil,
	)

	require.Len(t, plan.ToRemove, 1)
	assert.Equal(t, reconcile.Item{ID: "eqA", Quantity: 7}, plan.ToRemove[0],
		"la baja conserva la cantidad almacenada para el decremento del contador")
	assert.Equal(t, []reconcile.Adjustment{{ID: "eqA", Delta: -7}}, plan.CounterDeltas())
}

func TestDiffQuantified_DeltaNegativoEnInterseccion(t *testing.T) {
	plan := reconcile.DiffQuantified(
		[]reconcile.Item{{ID: "eqA", Quantity: 5}},
		[]reconcile.Item{{ID: "eqA", Quantity: 2}},
	)

	assert.Empty(t, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)
	assert.Equal(t, []reconcile.Adjustment{{ID: "eqA", Delta: -3}}, plan.Adjust)
}

func TestDiffQuantified_DuplicadosSuman(t *testing.T) {
	plan := reconcile.DiffQuantified(
		nil,
		[]reconcile.Item{{ID: "eqA", Quantity: 2}, {ID: "eqA", Quantity: 3}},
	)

	assert.Equal(t, []reconcile.Item{{ID: "eqA", Quantity: 5}}, plan.ToAdd)
}

// TestDiffQuantified_InvarianteDeContador: tras cualquier secuencia de
// reconciliaciones, la suma de deltas aplicados deja el contador igual a
// Σ quantity del estado final.
func TestDiffQuantified_InvarianteDeContador(t *testing.T) {
	states := [][]reconcile.Item{
		{{ID: "eqA", Quantity: 2}},
		{{ID: "eqA", Quantity: 5}, {ID: "eqB", Quantity: 1}},
		{{ID: "eqB", Quantity: 4}},
		nil,
		{{ID: "eqA", Quantity: 1}, {ID: "eqB", Quantity: 1}, {ID: "eqC", Quantity: 9}},
	}

	sales := map[string]int{}
	var current []reconcile.Item
	for _, desired := range states {
		plan := reconcile.DiffQuantified(current, desired)
		for _, d := range plan.CounterDeltas() {
			sales[d.ID] += d.Delta
		}
		current = desired
	}

	want := map[string]int{}
	for _, it := range current {
		want[it.ID] += it.Quantity
	}
	for id, qty := range want {
		assert.Equal(t, qty, sales[id], "sales de %s debe igualar Σ quantity", id)
	}
	for id, got := range sales {
		if _, ok := want[id]; !ok {
			assert.Zero(t, got, "equipo %s fuera del estado final debe quedar en cero", id)
		}
	}
}

func TestDiffQuantified_SegundaLlamadaSinEscrituras(t *testing.T) {
	desired := []reconcile.Item{{ID: "eqA", Quantity: 5}, {ID: "eqB", Quantity: 1}}

	first := reconcile.DiffQuantified([]reconcile.Item{{ID: "eqA", Quantity: 2}}, desired)
	require.False(t, first.Empty())

	second := reconcile.DiffQuantified(desired, desired)
	assert.True(t, second.Empty(), "reconciliar dos veces al mismo deseado no escribe nada la segunda vez")
}
