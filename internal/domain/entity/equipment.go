package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment equipo del catálogo de la empresa (paneles, inversores, estructuras...).
//
// Sales es un contador derivado: debe ser siempre igual a la suma de
// quantity en todas las filas work_equipments que referencian este equipo.
// Se mantiene incrementalmente (UPDATE ... SET sales = sales + delta) dentro
// de la misma transacción que toca la asociación; nunca en commits separados.
type Equipment struct {
	ID           string
	EnterpriseID string
	Name         string
	Brand        string
	Model        string
	Price        decimal.Decimal
	Quantity     int // existencias en bodega
	Sales        int // contador derivado: Σ quantity en work_equipments
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
