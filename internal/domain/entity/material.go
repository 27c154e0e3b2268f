package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material material del catálogo de la empresa (cable, tornillería, canaleta...).
type Material struct {
	ID           string
	EnterpriseID string
	Name         string
	Unit         string // m, un, kg...
	Price        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
