package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkStatus estado del ciclo de vida de una obra.
type WorkStatus string

// Estados válidos. INPROGRESS es el único no terminal: las listas de
// asociación (equipos, cuadrilla) y los movimientos financieros
// (materiales, transacciones) solo se admiten mientras la obra está en curso.
const (
	WorkInProgress WorkStatus = "INPROGRESS"
	WorkCompleted  WorkStatus = "COMPLETED"
	WorkCancelled  WorkStatus = "CANCELLED"
)

// Terminal indica si el estado ya no admite transiciones.
func (s WorkStatus) Terminal() bool {
	return s == WorkCompleted || s == WorkCancelled
}

// Work obra de instalación solar de una empresa.
type Work struct {
	ID           string
	EnterpriseID string
	CustomerID   string  // usuario con rol CUSTOMER
	TeamID       *string // cuadrilla asignada; nil si aún no hay
	Title        string
	Description  string
	Address      string
	Status       WorkStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Editable indica si la obra aún admite mutaciones de asociaciones y finanzas.
func (w *Work) Editable() bool {
	return w.Status == WorkInProgress
}

// WorkEquipment asociación (work_id, equipment_id, quantity).
// La quantity alimenta el contador derivado Equipment.Sales.
type WorkEquipment struct {
	WorkID      string
	EquipmentID string
	Quantity    int
	CreatedAt   time.Time
}

// WorkMaterial material consumido en una obra, con snapshot monetario propio
// (amount × quantity es lo que suma el agregador de analítica como costo).
type WorkMaterial struct {
	ID        string
	WorkID    string
	Name      string
	Unit      string
	Amount    decimal.Decimal // precio unitario al momento del registro
	Quantity  decimal.Decimal
	CreatedAt time.Time
}
