package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEquipmentRequest alta de equipo en el catálogo.
type CreateEquipmentRequest struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Model    string          `json:"model"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// UpdateEquipmentRequest edición de equipo. Sales NO es editable: es un
// contador derivado que solo mueve la reconciliación de obras.
type UpdateEquipmentRequest struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Model    string          `json:"model"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// EquipmentResponse representación pública de un equipo.
type EquipmentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Sales     int             `json:"sales"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
