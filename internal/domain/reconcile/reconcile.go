// Package reconcile calcula la convergencia entre el conjunto deseado y el
// almacenado de una asociación muchos-a-muchos. Es lógica pura: no toca la
// base de datos; los casos de uso aplican el plan dentro de UNA transacción.
//
// Se usa en tres asociaciones concretas: owners de empresa, miembros de
// cuadrilla y equipos de obra (esta última con quantity y contador derivado).
package reconcile

import "sort"

// Plan conjunto de altas y bajas para una asociación simple (solo ids).
type Plan struct {
	ToAdd    []string
	ToRemove []string
}

// Empty indica que no hay nada que escribir (llamada idempotente).
func (p Plan) Empty() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0
}

// Diff calcula toAdd = desired − current y toRemove = current − desired.
// Los duplicados en las entradas se colapsan; la salida queda ordenada para
// que el plan sea determinista (y las pruebas, estables).
func Diff(current, desired []string) Plan {
	cur := toSet(current)
	des := toSet(desired)

	var plan Plan
	for id := range des {
		if _, ok := cur[id]; !ok {
			plan.ToAdd = append(plan.ToAdd, id)
		}
	}
	for id := range cur {
		if _, ok := des[id]; !ok {
			plan.ToRemove = append(plan.ToRemove, id)
		}
	}
	sort.Strings(plan.ToAdd)
	sort.Strings(plan.ToRemove)
	return plan
}

// Item par (id, cantidad) de la variante con quantity.
type Item struct {
	ID       string
	Quantity int
}

// Adjustment delta de contador para un id presente en ambos conjuntos.
type Adjustment struct {
	ID    string
	Delta int // desiredQuantity − currentQuantity, nunca cero
}

// QuantifiedPlan plan para la asociación con quantity (equipos de obra).
//
// ToRemove conserva la cantidad ALMACENADA: es la que hay que descontar del
// contador antes de borrar la fila. Adjust cubre los ids de la intersección
// cuyo delta de cantidad no es cero — no están ni en ToAdd ni en ToRemove,
// pero igual mueven el contador.
type QuantifiedPlan struct {
	ToAdd    []Item
	ToRemove []Item
	Adjust   []Adjustment
}

// Empty indica que no hay nada que escribir.
func (p QuantifiedPlan) Empty() bool {
	return len(p.ToAdd) == 0 && len(p.ToRemove) == 0 && len(p.Adjust) == 0
}

// CounterDeltas devuelve el delta total del contador por id: +quantity de las
// altas, −quantity almacenada de las bajas y el delta de los ajustes.
// La suma de estos deltas es exactamente lo que mantiene el invariante
// sales == Σ quantity tras aplicar el plan.
func (p QuantifiedPlan) CounterDeltas() []Adjustment {
	deltas := make([]Adjustment, 0, len(p.ToAdd)+len(p.ToRemove)+len(p.Adjust))
	for _, it := range p.ToAdd {
		deltas = append(deltas, Adjustment{ID: it.ID, Delta: it.Quantity})
	}
	for _, it := range p.ToRemove {
		deltas = append(deltas, Adjustment{ID: it.ID, Delta: -it.Quantity})
	}
	deltas = append(deltas, p.Adjust...)
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].ID < deltas[j].ID })
	return deltas
}

// DiffQuantified calcula el plan para la variante con quantity.
// Si un id se repite en la entrada, sus cantidades se suman.
func DiffQuantified(current, desired []Item) QuantifiedPlan {
	cur := toQtyMap(current)
	des := toQtyMap(desired)

	var plan QuantifiedPlan
	for id, qty := range des {
		if _, ok := cur[id]; !ok {
			plan.ToAdd = append(plan.ToAdd, Item{ID: id, Quantity: qty})
		}
	}
	for id, qty := range cur {
		desQty, ok := des[id]
		if !ok {
			plan.ToRemove = append(plan.ToRemove, Item{ID: id, Quantity: qty})
			continue
		}
		if delta := desQty - qty; delta != 0 {
			plan.Adjust = append(plan.Adjust, Adjustment{ID: id, Delta: delta})
		}
	}
	sort.Slice(plan.ToAdd, func(i, j int) bool { return plan.ToAdd[i].ID < plan.ToAdd[j].ID })
	sort.Slice(plan.ToRemove, func(i, j int) bool { return plan.ToRemove[i].ID < plan.ToRemove[j].ID })
	sort.Slice(plan.Adjust, func(i, j int) bool { return plan.Adjust[i].ID < plan.Adjust[j].ID })
	return plan
}

func toSet(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func toQtyMap(items []Item) map[string]int {
	m := make(map[string]int, len(items))
	for _, it := range items {
		m[it.ID] += it.Quantity
	}
	return m
}
