package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest alta de material en el catálogo.
type CreateMaterialRequest struct {
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// UpdateMaterialRequest edición de material.
type UpdateMaterialRequest struct {
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// MaterialResponse representación pública de un material.
type MaterialResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
